package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"gorm.io/gorm"
)

type ListFilter struct {
	RoomID   snowflake.ID
	TenantID snowflake.ID
	// Statuses match the stored column.
	Statuses []Status
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, contract *Contract) error
	Update(ctx context.Context, db *gorm.DB, contract *Contract) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Contract, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Contract, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Contract, error)
	// FindActiveByRoom returns contracts stored ACTIVE on the room.
	FindActiveByRoom(ctx context.Context, db *gorm.DB, roomID snowflake.ID) ([]Contract, error)
	// FindActiveEndedBefore returns contracts stored ACTIVE whose end date is before day.
	FindActiveEndedBefore(ctx context.Context, db *gorm.DB, day date.Date) ([]Contract, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Contract, error)
	ReplaceCoTenants(ctx context.Context, db *gorm.DB, contractID snowflake.ID, tenantIDs []snowflake.ID) error
	// LoadCoTenants fills CoTenantIDs on each contract.
	LoadCoTenants(ctx context.Context, db *gorm.DB, contracts []Contract) error
}
