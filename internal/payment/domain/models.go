// Package domain contains payment models.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash         Method = "CASH"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodMomo         Method = "MOMO"
	MethodOther        Method = "OTHER"
)

func ParseMethod(value string) (Method, bool) {
	switch m := Method(strings.ToUpper(strings.TrimSpace(value))); m {
	case MethodCash, MethodBankTransfer, MethodMomo, MethodOther:
		return m, true
	default:
		return "", false
	}
}

// Payment is an immutable record of money received against an invoice.
type Payment struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID       snowflake.ID    `gorm:"not null;index" json:"invoiceId"`
	ReceiptNumber   string          `gorm:"not null;size:64;uniqueIndex" json:"receiptNumber"`
	PaidAmount      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"paidAmount"`
	PaymentDate     time.Time       `gorm:"not null;index" json:"paymentDate"`
	Method          Method          `gorm:"not null;size:16" json:"method"`
	TransactionCode string          `gorm:"size:128" json:"transactionCode,omitempty"`
	Note            string          `gorm:"type:text" json:"note,omitempty"`
	RecordedBy      string          `gorm:"size:64" json:"recordedBy,omitempty"`
	CreatedAt       time.Time       `gorm:"not null" json:"createdAt"`

	InvoiceCode string `gorm:"->;-:migration" json:"invoiceCode,omitempty"`
}
