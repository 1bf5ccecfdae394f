package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, st *domain.ServiceType) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO service_types (id, name, category, unit, price_per_unit, description, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.ID,
		st.Name,
		st.Category,
		st.Unit,
		st.PricePerUnit,
		st.Description,
		st.IsActive,
		st.CreatedAt,
		st.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, st *domain.ServiceType) error {
	return db.WithContext(ctx).Exec(
		`UPDATE service_types
		 SET name = ?, category = ?, unit = ?, price_per_unit = ?, description = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		st.Name,
		st.Category,
		st.Unit,
		st.PricePerUnit,
		st.Description,
		st.IsActive,
		st.UpdatedAt,
		st.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM service_types WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ServiceType, error) {
	var st domain.ServiceType
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, category, unit, price_per_unit, description, is_active, created_at, updated_at
		 FROM service_types WHERE id = ?`,
		id,
	).Scan(&st).Error
	if err != nil {
		return nil, err
	}
	if st.ID == 0 {
		return nil, nil
	}
	return &st, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.ServiceType, error) {
	var st domain.ServiceType
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, category, unit, price_per_unit, description, is_active, created_at, updated_at
		 FROM service_types WHERE LOWER(name) = LOWER(?)`,
		name,
	).Scan(&st).Error
	if err != nil {
		return nil, err
	}
	if st.ID == 0 {
		return nil, nil
	}
	return &st, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.ServiceType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []domain.ServiceType
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.ServiceType, error) {
	var items []domain.ServiceType
	stmt := db.WithContext(ctx).Model(&domain.ServiceType{})
	if filter.ActiveOnly {
		stmt = stmt.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if err := stmt.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CountAssignments(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Table("room_services").Where("service_type_id = ?", id).Count(&count).Error
	return count, err
}
