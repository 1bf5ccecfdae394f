package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/room/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const roomColumns = `id, boarding_house_id, code, floor, area, max_occupants, base_rent, status, description, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, room *domain.Room) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO rooms (`+roomColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		room.ID,
		room.BoardingHouseID,
		room.Code,
		room.Floor,
		room.Area,
		room.MaxOccupants,
		room.BaseRent,
		room.Status,
		room.Description,
		room.CreatedAt,
		room.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, room *domain.Room) error {
	return db.WithContext(ctx).Exec(
		`UPDATE rooms
		 SET code = ?, floor = ?, area = ?, max_occupants = ?, base_rent = ?, status = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		room.Code,
		room.Floor,
		room.Area,
		room.MaxOccupants,
		room.BaseRent,
		room.Status,
		room.Description,
		room.UpdatedAt,
		room.ID,
	).Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE rooms SET status = ?, updated_at = ? WHERE id = ?`,
		status, at, id,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM room_services WHERE room_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM rooms WHERE id = ?`, id).Error
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Room, error) {
	var room domain.Room
	err := db.WithContext(ctx).Raw(`SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id).Scan(&room).Error
	if err != nil {
		return nil, err
	}
	if room.ID == 0 {
		return nil, nil
	}
	return &room, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Room, error) {
	var rooms []domain.Room
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, nil
	}
	return &rooms[0], nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Room, error) {
	var room domain.Room
	err := db.WithContext(ctx).Raw(`SELECT `+roomColumns+` FROM rooms WHERE LOWER(code) = LOWER(?)`, code).Scan(&room).Error
	if err != nil {
		return nil, err
	}
	if room.ID == 0 {
		return nil, nil
	}
	return &room, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Room, error) {
	var rooms []domain.Room
	stmt := db.WithContext(ctx).Model(&domain.Room{})
	if filter.BoardingHouseID != 0 {
		stmt = stmt.Where("boarding_house_id = ?", filter.BoardingHouseID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if err := stmt.Order("code asc").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *repo) CountContracts(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Table("contracts").Where("room_id = ?", id).Count(&count).Error
	return count, err
}
