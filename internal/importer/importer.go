package importer

import (
	"io"

	"github.com/ricardofs/confere/internal/statement"
)

type Format string

const (
	FormatFatura Format = "fatura"
)

type Parser interface {
	Parse(r io.Reader) (*statement.ParsedStatement, error)
}
