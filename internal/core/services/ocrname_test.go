package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	lines := SplitLines("  PANADOL \n\n 500mg\r\n  \nGSK ")

	assert.Equal(t, []string{"PANADOL", "500mg", "GSK"}, lines)
}

func TestExtractNameFromOCR(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "dosage and form stripped from first line",
			raw:  "PANADOL 500mg Tablets\nParacetamol BP\nGSK Pakistan Ltd",
			want: "PANADOL",
		},
		{
			name: "bare dosage line skipped",
			raw:  "500mg\nBrufen\nIbuprofen",
			want: "Brufen",
		},
		{
			name: "manufacturer line skipped",
			raw:  "Hilton Pharma Pvt Ltd\nArinac\nParacetamol + Chlorpheniramine",
			want: "Arinac",
		},
		{
			name: "pack count removed",
			raw:  "Flagyl 10 x 10\nMetronidazole",
			want: "Flagyl",
		},
		{
			name: "punctuation replaced",
			raw:  "Augmentin® 625mg",
			want: "Augmentin",
		},
		{
			name: "keyword fallback takes up to three tokens",
			raw:  "500mg\n10\nmg ml\nkeep out\nzz\nalpha beta gamma delta",
			want: "alpha beta gamma",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractNameFromOCR(tt.raw, SplitLines(tt.raw)))
		})
	}
}

func TestNameFromKeywords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"fewer than three", "Ponstan", "Ponstan"},
		{"exactly three kept", "alpha beta gamma delta", "alpha beta gamma"},
		{"short and unit tokens dropped", "ab 20mg 500 Disprin", "Disprin"},
		{"filter words dropped", "tablets capsules Calpol", "Calpol"},
		{"nothing left", "mg ml 10", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nameFromKeywords(tt.raw))
		})
	}
}

func TestNameFromFirstLine(t *testing.T) {
	assert.Equal(t, "Panadol-Extra", nameFromFirstLine("Panadol-Extra! 500"))
	long := "aaaaaaaaaa bbbbbbbbbb cccccccccc dddddddddd eeeeeeeeee ffffffffff"
	assert.Len(t, []rune(nameFromFirstLine(long)), 50)
}
