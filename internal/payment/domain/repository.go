package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	InvoiceID  snowflake.ID
	InvoiceIDs []snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Payment, error)
	// List returns payments newest first with the invoice code joined in.
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Payment, error)
}
