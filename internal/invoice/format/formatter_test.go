package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInvoiceCode(t *testing.T) {
	code, err := FormatInvoiceCode(DefaultInvoiceCodeTemplate, "CT-2024-001", 3, 2024)
	require.NoError(t, err)
	assert.Equal(t, "INV-CT-2024-001-03-2024", code)

	code, err = FormatInvoiceCode("{CONTRACT}/{YY}{M}", "A1", 11, 2025)
	require.NoError(t, err)
	assert.Equal(t, "A1/2511", code)
}

func TestFormatInvoiceCodeRejects(t *testing.T) {
	cases := []struct {
		name     string
		template string
		contract string
		month    int
		year     int
	}{
		{"empty template", "", "CT", 1, 2024},
		{"empty contract", DefaultInvoiceCodeTemplate, " ", 1, 2024},
		{"bad month", DefaultInvoiceCodeTemplate, "CT", 13, 2024},
		{"bad year", DefaultInvoiceCodeTemplate, "CT", 1, 0},
		{"unknown token", "INV-{SEQ}", "CT", 1, 2024},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FormatInvoiceCode(tc.template, tc.contract, tc.month, tc.year)
			assert.Error(t, err)
		})
	}
}
