package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"github.com/smallbiznis/boardinghouse/pkg/db/pagination"
)

// Reading is one meter reading for a metered room service.
type Reading struct {
	ServiceTypeID snowflake.ID    `json:"serviceTypeId"`
	OldIndex      decimal.Decimal `json:"oldIndex"`
	NewIndex      decimal.Decimal `json:"newIndex"`
}

type GenerateRequest struct {
	ContractID string `json:"contractId" validate:"required"`
	Month      int    `json:"month" validate:"required,gte=1,lte=12"`
	Year       int    `json:"year" validate:"required,gte=2000,lte=9999"`
}

type GenerateWithReadingsRequest struct {
	ContractID string    `json:"contractId" validate:"required"`
	Month      int       `json:"month" validate:"required,gte=1,lte=12"`
	Year       int       `json:"year" validate:"required,gte=2000,lte=9999"`
	Readings   []Reading `json:"readings"`
}

type ListInvoiceRequest struct {
	pagination.Pagination
	ContractID string `form:"contractId"`
	Status     string `form:"status"`
	Month      int    `form:"month" validate:"omitempty,gte=1,lte=12"`
	Year       int    `form:"year" validate:"omitempty,gte=2000,lte=9999"`
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	// Generate bills rent and fixed services; metered lines are emitted as
	// zero placeholders.
	Generate(ctx context.Context, req GenerateRequest) (Invoice, error)
	// GenerateWithReadings bills metered services from the supplied readings.
	GenerateWithReadings(ctx context.Context, req GenerateWithReadingsRequest) (Invoice, error)
	// Preview validates and computes like GenerateWithReadings without persisting.
	Preview(ctx context.Context, req GenerateWithReadingsRequest) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	ListByContract(ctx context.Context, contractID string) ([]Invoice, error)
	// ListByContracts returns the invoices of several contracts, newest first.
	ListByContracts(ctx context.Context, contractIDs []snowflake.ID) ([]Invoice, error)
	// Delete removes an invoice that has no payments.
	Delete(ctx context.Context, id string) error
	RenderPDF(ctx context.Context, id string) (RenderedPDF, error)
}

type RenderedPDF struct {
	FileName string
	Content  []byte
}

var (
	ErrInvalidInvoiceID   = ierr.NewError("invalid_invoice_id").WithHint("Invalid invoice id").Mark(ierr.ErrInvalidInput)
	ErrInvoiceNotFound    = ierr.NewError("invoice_not_found").WithHint("Invoice not found").Mark(ierr.ErrNotFound)
	ErrInvalidContractID  = ierr.NewError("invalid_contract_id").WithHint("Invalid contract id").Mark(ierr.ErrInvalidInput)
	ErrContractNotFound   = ierr.NewError("contract_not_found").WithHint("Contract not found").Mark(ierr.ErrNotFound)
	ErrContractNotActive  = ierr.NewError("contract_not_active").WithHint("Invoices can only be generated for ACTIVE contracts").Mark(ierr.ErrInvalidState)
	ErrRoomHasOtherActive = ierr.NewError("room_has_other_active_contract").WithHint("Another ACTIVE contract exists on this room").Mark(ierr.ErrInvalidState)
	ErrDuplicatePeriod    = ierr.NewError("duplicate_invoice_period").WithHint("An invoice already exists for this contract and period").Mark(ierr.ErrConflict)
	ErrInvalidPeriod      = ierr.NewError("invalid_period").WithHint("Month must be between 1 and 12").Mark(ierr.ErrInvalidInput)
	ErrInvalidStatus      = ierr.NewError("invalid_invoice_status").WithHint("Status must be one of UNPAID, PARTIALLY_PAID, PAID, OVERDUE").Mark(ierr.ErrInvalidInput)
	ErrInvalidPageToken   = ierr.NewError("invalid_page_token").WithHint("Invalid page token").Mark(ierr.ErrInvalidInput)
	ErrHasPayments        = ierr.NewError("invoice_has_payments").WithHint("Invoices with payments cannot be deleted").Mark(ierr.ErrInvalidState)
	ErrInvoiceBusy        = ierr.NewError("invoice_busy").WithHint("The invoice is being processed by another request, retry shortly").Mark(ierr.ErrConflict)
)
