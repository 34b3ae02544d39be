package fatura

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseBrazilianAmount parses a Brazilian-formatted amount string.
// Format examples: "1.234,56" -> 1234.56, "45,00" -> 45, "10" -> 10.
func parseBrazilianAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return decimal.NewFromString(clean)
}
