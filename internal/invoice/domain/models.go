// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/boardinghouse/pkg/date"
)

// InvoiceStatus is what readers see. Only UNPAID, PARTIALLY_PAID and PAID are
// stored; OVERDUE is derived from the due date on every read.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "UNPAID"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusOverdue       InvoiceStatus = "OVERDUE"
)

// ItemTypeRent marks the base rent line. Service lines use the service category.
const ItemTypeRent = "RENT"

// IndexPlaces is the scale of stored meter indexes and quantities.
const IndexPlaces int32 = 2

// Invoice bills one contract for one (month, year) period.
type Invoice struct {
	ID               snowflake.ID    `gorm:"primaryKey" json:"id"`
	Code             string          `gorm:"not null;size:96;uniqueIndex" json:"code"`
	ContractID       snowflake.ID    `gorm:"not null;uniqueIndex:ux_invoices_contract_period,priority:1" json:"contractId"`
	PeriodMonth      int             `gorm:"not null;uniqueIndex:ux_invoices_contract_period,priority:2" json:"periodMonth"`
	PeriodYear       int             `gorm:"not null;uniqueIndex:ux_invoices_contract_period,priority:3" json:"periodYear"`
	DueDate          date.Date       `gorm:"not null;index" json:"dueDate"`
	Currency         string          `gorm:"not null;size:8" json:"currency"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"totalAmount"`
	PaidAmount       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"paidAmount"`
	SettlementStatus InvoiceStatus   `gorm:"column:status;not null;size:16;index" json:"-"`
	CreatedAt        time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updatedAt"`

	RemainingAmount decimal.Decimal `gorm:"-" json:"remainingAmount"`
	Status          InvoiceStatus   `gorm:"-" json:"status"`
	Items           []InvoiceItem   `gorm:"-" json:"items,omitempty"`
}

// InvoiceItem is an immutable snapshot of one billed line.
type InvoiceItem struct {
	ID            snowflake.ID     `gorm:"primaryKey" json:"id"`
	InvoiceID     snowflake.ID     `gorm:"not null;index" json:"invoiceId"`
	Position      int              `gorm:"not null" json:"-"`
	Type          string           `gorm:"not null;size:16" json:"type"`
	ServiceTypeID *snowflake.ID    `json:"serviceTypeId,omitempty"`
	Description   string           `gorm:"type:text;not null" json:"description"`
	Unit          string           `gorm:"size:32" json:"unit,omitempty"`
	OldIndex      *decimal.Decimal `gorm:"type:numeric(18,2)" json:"oldIndex,omitempty"`
	NewIndex      *decimal.Decimal `gorm:"type:numeric(18,2)" json:"newIndex,omitempty"`
	Quantity      decimal.Decimal  `gorm:"type:numeric(18,2);not null" json:"quantity"`
	UnitPrice     decimal.Decimal  `gorm:"type:numeric(18,2);not null" json:"unitPrice"`
	Amount        decimal.Decimal  `gorm:"type:numeric(18,2);not null" json:"amount"`
	CreatedAt     time.Time        `gorm:"not null" json:"createdAt"`
}

// Remaining is max(total - paid, 0).
func Remaining(total, paid decimal.Decimal) decimal.Decimal {
	remaining := total.Sub(paid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Settle derives the stored status from the ledger amounts.
func Settle(total, paid decimal.Decimal) InvoiceStatus {
	switch {
	case !Remaining(total, paid).IsPositive():
		return InvoiceStatusPaid
	case paid.IsPositive():
		return InvoiceStatusPartiallyPaid
	default:
		return InvoiceStatusUnpaid
	}
}

// StatusAt derives the reader status as of today. PAID wins over any date.
func StatusAt(total, paid decimal.Decimal, due, today date.Date) InvoiceStatus {
	settled := Settle(total, paid)
	if settled != InvoiceStatusPaid && today.After(due) {
		return InvoiceStatusOverdue
	}
	return settled
}

// Resolve fills the derived fields for today and returns the invoice.
func (i *Invoice) Resolve(today date.Date) *Invoice {
	i.RemainingAmount = Remaining(i.TotalAmount, i.PaidAmount)
	i.Status = StatusAt(i.TotalAmount, i.PaidAmount, i.DueDate, today)
	return i
}

// DaysOverdue is max(today - dueDate, 0) for an unsettled invoice.
func (i Invoice) DaysOverdue(today date.Date) int {
	if !Remaining(i.TotalAmount, i.PaidAmount).IsPositive() {
		return 0
	}
	days := i.DueDate.DaysUntil(today)
	if days < 0 {
		return 0
	}
	return days
}
