package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, st *ServiceType) error
	Update(ctx context.Context, db *gorm.DB, st *ServiceType) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ServiceType, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*ServiceType, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]ServiceType, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]ServiceType, error)
	CountAssignments(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
