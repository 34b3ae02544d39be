package importer

import (
	"fmt"
	"io"

	"github.com/ricardofs/confere/internal/importer/fatura"
	"github.com/ricardofs/confere/internal/statement"
)

type Service struct {
	faturaParser Parser
}

func NewService() *Service {
	return &Service{
		faturaParser: fatura.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) (*statement.ParsedStatement, error) {
	var parser Parser

	switch format {
	case FormatFatura:
		parser = s.faturaParser
	default:
		return nil, fmt.Errorf("unknown statement format: %s", format)
	}

	return parser.Parse(r)
}
