package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status Status
	Query  string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tenant *Tenant) error
	Update(ctx context.Context, db *gorm.DB, tenant *Tenant) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Tenant, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Tenant, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID string) (*Tenant, error)
	FindByIdentityNumber(ctx context.Context, db *gorm.DB, identityNumber string) (*Tenant, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Tenant, error)
	// CountContracts counts contracts naming the tenant as main or co-tenant.
	CountContracts(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
