package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rs *RoomService) error
	UpdatePrices(ctx context.Context, db *gorm.DB, rs *RoomService) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*RoomService, error)
	FindByRoomAndType(ctx context.Context, db *gorm.DB, roomID, serviceTypeID snowflake.ID) (*RoomService, error)
	ListViewsByRoom(ctx context.Context, db *gorm.DB, roomID snowflake.ID) ([]View, error)
}
