package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r so that its content is read as UTF-8.
//
// Statement dumps arrive in whatever encoding the bank's site happened to
// produce, so detection goes: BOM, then a UTF-8 validity check, then chardet
// heuristics, with Latin-1 as the final fallback (the usual culprit for
// Brazilian bank exports).
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	return transform.NewReader(br, detectCharmap(buf).NewDecoder()), nil
}

// detectCharmap picks a single-byte decoder for content that is not UTF-8.
func detectCharmap(buf []byte) *charmap.Charmap {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return charmap.ISO8859_1
	}

	switch result.Charset {
	case "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-9":
		return charmap.ISO8859_9
	default:
		return charmap.ISO8859_1
	}
}
