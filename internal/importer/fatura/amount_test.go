package fatura

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBrazilianAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ThousandsAndDecimals", input: "1.234,56", want: "1234.56"},
		{name: "DecimalsOnly", input: "45,00", want: "45"},
		{name: "NoSeparators", input: "10", want: "10"},
		{name: "Millions", input: "1.234.567,89", want: "1234567.89"},
		{name: "Negative", input: "-588,74", want: "-588.74"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBrazilianAmount(tt.input)
			require.NoError(t, err)

			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestParseBrazilianAmount_Invalid(t *testing.T) {
	for _, input := range []string{"", ",,,", "abc", "12,34,56"} {
		_, err := parseBrazilianAmount(input)
		assert.Error(t, err, "input %q", input)
	}
}
