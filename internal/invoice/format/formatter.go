package format

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultInvoiceCodeTemplate yields codes such as INV-CT-2024-001-03-2024.
const DefaultInvoiceCodeTemplate = "INV-{CONTRACT}-{MM}-{YYYY}"

// FormatInvoiceCode renders template for a contract code and billing period.
// It is pure: the same inputs always produce the same code.
func FormatInvoiceCode(template, contractCode string, month, year int) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice code template is empty")
	}
	contractCode = strings.TrimSpace(contractCode)
	if contractCode == "" {
		return "", fmt.Errorf("contract code is empty")
	}
	if month < 1 || month > 12 {
		return "", fmt.Errorf("invalid period month: %d", month)
	}
	if year <= 0 {
		return "", fmt.Errorf("invalid period year: %d", year)
	}

	out := template
	out = strings.ReplaceAll(out, "{CONTRACT}", contractCode)
	out = strings.ReplaceAll(out, "{YYYY}", fmt.Sprintf("%04d", year))
	out = strings.ReplaceAll(out, "{YY}", fmt.Sprintf("%02d", year%100))
	out = strings.ReplaceAll(out, "{MM}", fmt.Sprintf("%02d", month))
	out = strings.ReplaceAll(out, "{M}", strconv.Itoa(month))

	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice code format: %s", out)
	}
	return out, nil
}
