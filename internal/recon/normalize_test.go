package recon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ricardofs/confere/internal/recon"
)

func TestNormalize(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  string
	}

	tests := []testCase{
		{
			name:  "Lowercases",
			input: "UBER TRIP",
			want:  "ubertrip",
		},
		{
			name:  "StripsDiacritics",
			input: "Pão de Açúcar S.A.",
			want:  "paodeacucarsa",
		},
		{
			name:  "DropsPunctuationAndSpaces",
			input: "posto - shell; ltda.",
			want:  "postoshellltda",
		},
		{
			name:  "KeepsDigits",
			input: "Restaurante 79",
			want:  "restaurante79",
		},
		{
			name:  "Empty",
			input: "",
			want:  "",
		},
		{
			name:  "OnlySymbols",
			input: "***---***",
			want:  "",
		},
		{
			name:  "MixedAccents",
			input: "CAFÉ São João",
			want:  "cafesaojoao",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recon.Normalize(tt.input))
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	input := "Açaí & Companhia Ltda"
	assert.Equal(t, recon.Normalize(input), recon.Normalize(input))
}
