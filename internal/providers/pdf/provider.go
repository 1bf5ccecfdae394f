// Package pdf renders invoices and payment receipts with maroto.
package pdf

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Provider interface {
	RenderInvoice(ctx context.Context, doc InvoiceDocument) ([]byte, error)
	RenderReceipt(ctx context.Context, doc ReceiptDocument) ([]byte, error)
}

// Line is one invoice item as printed.
type Line struct {
	Description string
	Unit        string
	OldIndex    *decimal.Decimal
	NewIndex    *decimal.Decimal
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

type InvoiceDocument struct {
	HouseName    string
	HouseAddress string
	InvoiceCode  string
	Period       string
	IssueDate    string
	DueDate      string
	Status       string
	TenantName   string
	TenantPhone  string
	RoomCode     string
	Currency     string
	MinorUnits   int32
	Lines        []Line
	Total        decimal.Decimal
	Paid         decimal.Decimal
	Remaining    decimal.Decimal
}

type ReceiptDocument struct {
	HouseName       string
	ReceiptNumber   string
	InvoiceCode     string
	Period          string
	PaidOn          string
	Method          string
	TransactionCode string
	RecordedBy      string
	TenantName      string
	RoomCode        string
	Currency        string
	MinorUnits      int32
	Amount          decimal.Decimal
	InvoiceTotal    decimal.Decimal
	Remaining       decimal.Decimal
}

type PDFProvider struct {
	printer *message.Printer
}

func New() Provider {
	return &PDFProvider{printer: message.NewPrinter(language.English)}
}

// money prints v with grouped thousands and the currency code.
func (p *PDFProvider) money(v decimal.Decimal, minorUnits int32, currency string) string {
	amount := p.printer.Sprint(number.Decimal(v.InexactFloat64(), number.Scale(int(minorUnits))))
	if currency == "" {
		return amount
	}
	return amount + " " + currency
}

func (p *PDFProvider) quantity(v decimal.Decimal) string {
	return p.printer.Sprint(number.Decimal(v.InexactFloat64(), number.MaxFractionDigits(2)))
}
