package recon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ricardofs/confere/internal/recon"
)

func TestDescriptionsMatch(t *testing.T) {
	type testCase struct {
		name string
		a    string
		b    string
		want bool
	}

	tests := []testCase{
		{
			name: "ExactAfterNormalization",
			a:    "Posto Shell",
			b:    "POSTO SHELL",
			want: true,
		},
		{
			name: "AccentsIgnored",
			a:    "Pão de Açúcar",
			b:    "PAO DE ACUCAR",
			want: true,
		},
		{
			name: "StatementLineContainsSupplier",
			a:    "PAG*PostoShellCentro",
			b:    "Posto Shell",
			want: true,
		},
		{
			name: "SupplierContainsStatementLine",
			a:    "IFOOD",
			b:    "IFOOD RESTAURANTES LTDA",
			want: true,
		},
		{
			name: "TruncatedToFixedWidthColumn",
			a:    "SUPERMERCADOEXTRA123",
			b:    "SUPERMERCADO EXTRA UNIDADE CENTRO",
			want: true,
		},
		{
			name: "ShortStringsNoPrefixRule",
			a:    "UBERTAXI",
			b:    "UBERPOOL",
			want: false,
		},
		{
			name: "DifferentMerchants",
			a:    "UBER TRIP",
			b:    "Posto Shell",
			want: false,
		},
		{
			// "ubertrip" vs "uberbrasil": neither contains the other and
			// both are under the prefix length, so this pair relies on the
			// value-only fallback during reconciliation.
			name: "UberTripVsUberBrasil",
			a:    "UBER TRIP",
			b:    "Uber Brasil",
			want: false,
		},
		{
			// An empty key is contained in everything. Invoices without a
			// usable description rely on this to fall through to the value
			// check instead of being rejected outright.
			name: "EmptyMatchesAnything",
			a:    "Posto Shell",
			b:    "",
			want: true,
		},
		{
			name: "BothEmpty",
			a:    "",
			b:    "",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recon.DescriptionsMatch(tt.a, tt.b))
			// Matching is symmetric.
			assert.Equal(t, tt.want, recon.DescriptionsMatch(tt.b, tt.a))
		})
	}
}

func TestValuesMatch(t *testing.T) {
	type testCase struct {
		name string
		v1   string
		v2   string
		want bool
	}

	tests := []testCase{
		{name: "Equal", v1: "45.00", v2: "45.00", want: true},
		{name: "OneCentApart", v1: "45.00", v2: "45.01", want: true},
		{name: "OneCentBelow", v1: "45.00", v2: "44.99", want: true},
		{name: "TwoCentsApart", v1: "45.00", v2: "45.02", want: false},
		{name: "FarApart", v1: "200.00", v2: "45.00", want: false},
		{name: "BothZero", v1: "0", v2: "0.00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v1 := decimal.RequireFromString(tt.v1)
			v2 := decimal.RequireFromString(tt.v2)
			assert.Equal(t, tt.want, recon.ValuesMatch(v1, v2))
		})
	}
}

func TestValuesMatchWithin(t *testing.T) {
	v1 := decimal.RequireFromString("100.00")
	v2 := decimal.RequireFromString("100.50")

	assert.True(t, recon.ValuesMatchWithin(v1, v2, decimal.RequireFromString("0.50")))
	assert.False(t, recon.ValuesMatchWithin(v1, v2, decimal.RequireFromString("0.49")))
}
