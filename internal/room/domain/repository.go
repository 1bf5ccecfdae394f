package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	BoardingHouseID snowflake.ID
	Status          Status
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, room *Room) error
	Update(ctx context.Context, db *gorm.DB, room *Room) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status, at time.Time) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Room, error)
	// FindByIDForUpdate locks the row for the enclosing transaction.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Room, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Room, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Room, error)
	CountContracts(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
