package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
)

type CreateRequest struct {
	InvoiceID       string          `json:"invoiceId" validate:"required"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	PaymentDate     *time.Time      `json:"paymentDate"`
	Method          string          `json:"method" validate:"required"`
	TransactionCode string          `json:"transactionCode" validate:"max=128"`
	Note            string          `json:"note"`
}

type ListRequest struct {
	InvoiceID string `form:"invoiceId"`
}

type Receipt struct {
	FileName string
	Content  []byte
}

type Service interface {
	// Apply records a payment and settles it against the invoice atomically.
	Apply(ctx context.Context, req CreateRequest) (Payment, error)
	Get(ctx context.Context, id string) (Payment, error)
	List(ctx context.Context, req ListRequest) ([]Payment, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]Payment, error)
	ListByInvoices(ctx context.Context, invoiceIDs []snowflake.ID) ([]Payment, error)
	RenderReceipt(ctx context.Context, id string) (Receipt, error)
}

var (
	ErrInvalidID        = ierr.NewError("invalid_payment_id").WithHint("Invalid payment id").Mark(ierr.ErrInvalidInput)
	ErrNotFound         = ierr.NewError("payment_not_found").WithHint("Payment not found").Mark(ierr.ErrNotFound)
	ErrInvalidInvoiceID = ierr.NewError("invalid_invoice_id").WithHint("Invalid invoice id").Mark(ierr.ErrInvalidInput)
	ErrInvoiceNotFound  = ierr.NewError("invoice_not_found").WithHint("Invoice not found").Mark(ierr.ErrNotFound)
	ErrInvalidMethod    = ierr.NewError("invalid_payment_method").WithHint("Method must be one of CASH, BANK_TRANSFER, MOMO, OTHER").Mark(ierr.ErrInvalidInput)
	ErrInvalidAmount    = ierr.NewError("invalid_payment_amount").WithHint("Payment amount must be greater than zero").Mark(ierr.ErrInvalidInput)
	ErrInvoicePaid      = ierr.NewError("invoice_already_paid").WithHint("Invoice is already fully paid").Mark(ierr.ErrInvalidState)
	ErrConcurrentUpdate = ierr.NewError("invoice_concurrently_updated").WithHint("The invoice changed while the payment was applied, retry").Mark(ierr.ErrConflict)
)
