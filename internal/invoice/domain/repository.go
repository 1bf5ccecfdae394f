package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"gorm.io/gorm"
)

// Cursor resumes a listing ordered by (created_at, id) descending.
type Cursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

type ListFilter struct {
	ContractID  snowflake.ID
	ContractIDs []snowflake.ID
	Month       int
	Year        int
	// Statuses match the stored settlement column.
	Statuses []InvoiceStatus
	// DueBefore keeps invoices whose due date is strictly before it.
	DueBefore *date.Date
	// DueFrom keeps invoices whose due date is on or after it.
	DueFrom *date.Date

	Cursor *Cursor
	// Limit fetches Limit+1 rows so callers can tell whether more exist. Zero lists all.
	Limit int
}

type Repository interface {
	// InsertWithItems writes the invoice and its items; callers run it in a transaction.
	InsertWithItems(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindByPeriod(ctx context.Context, db *gorm.DB, contractID snowflake.ID, month, year int) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*Invoice, error)
	ListItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]InvoiceItem, error)
	// UpdateSettlement applies a compare-and-set on paid_amount and reports
	// whether the row still held expectedPaid.
	UpdateSettlement(ctx context.Context, db *gorm.DB, invoice *Invoice, expectedPaid decimal.Decimal) (bool, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	CountPayments(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
