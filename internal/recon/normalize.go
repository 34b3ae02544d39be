package recon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes free text into a comparison key: lower-case,
// diacritics stripped (NFD decomposition, combining marks removed), and
// everything that is not an ASCII letter or digit dropped. It never fails;
// input that cannot be decomposed falls back to plain lower-casing.
//
// "Pão de Açúcar S.A." and "PAO DE ACUCAR SA" both normalize to
// "paodeacucarsa".
func Normalize(text string) string {
	lower := strings.ToLower(text)

	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), lower)
	if err != nil {
		stripped = lower
	}

	var b strings.Builder
	b.Grow(len(stripped))

	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}
