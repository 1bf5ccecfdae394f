package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/roomservice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rs *domain.RoomService) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO room_services (id, room_id, service_type_id, price_per_unit, fixed_price, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rs.ID,
		rs.RoomID,
		rs.ServiceTypeID,
		rs.PricePerUnit,
		rs.FixedPrice,
		rs.CreatedAt,
		rs.UpdatedAt,
	).Error
}

func (r *repo) UpdatePrices(ctx context.Context, db *gorm.DB, rs *domain.RoomService) error {
	return db.WithContext(ctx).Exec(
		`UPDATE room_services SET price_per_unit = ?, fixed_price = ?, updated_at = ? WHERE id = ?`,
		rs.PricePerUnit,
		rs.FixedPrice,
		rs.UpdatedAt,
		rs.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM room_services WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.RoomService, error) {
	var rs domain.RoomService
	err := db.WithContext(ctx).Raw(
		`SELECT id, room_id, service_type_id, price_per_unit, fixed_price, created_at, updated_at
		 FROM room_services WHERE id = ?`,
		id,
	).Scan(&rs).Error
	if err != nil {
		return nil, err
	}
	if rs.ID == 0 {
		return nil, nil
	}
	return &rs, nil
}

func (r *repo) FindByRoomAndType(ctx context.Context, db *gorm.DB, roomID, serviceTypeID snowflake.ID) (*domain.RoomService, error) {
	var rs domain.RoomService
	err := db.WithContext(ctx).Raw(
		`SELECT id, room_id, service_type_id, price_per_unit, fixed_price, created_at, updated_at
		 FROM room_services WHERE room_id = ? AND service_type_id = ?`,
		roomID, serviceTypeID,
	).Scan(&rs).Error
	if err != nil {
		return nil, err
	}
	if rs.ID == 0 {
		return nil, nil
	}
	return &rs, nil
}

func (r *repo) ListViewsByRoom(ctx context.Context, db *gorm.DB, roomID snowflake.ID) ([]domain.View, error) {
	var views []domain.View
	err := db.WithContext(ctx).Raw(
		`SELECT rs.id, rs.room_id, rs.service_type_id,
		        st.name AS service_type_name, st.category AS service_category, st.unit,
		        st.price_per_unit AS default_price, st.is_active,
		        rs.price_per_unit, rs.fixed_price
		 FROM room_services rs
		 JOIN service_types st ON st.id = rs.service_type_id
		 WHERE rs.room_id = ?
		 ORDER BY st.category ASC, st.name ASC`,
		roomID,
	).Scan(&views).Error
	return views, err
}
