package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const tenantColumns = `id, user_id, full_name, phone, email, identity_number, date_of_birth, permanent_address, status, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tenant *domain.Tenant) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tenants (`+tenantColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tenant.ID,
		tenant.UserID,
		tenant.FullName,
		tenant.Phone,
		tenant.Email,
		tenant.IdentityNumber,
		tenant.DateOfBirth,
		tenant.PermanentAddress,
		tenant.Status,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tenant *domain.Tenant) error {
	return db.WithContext(ctx).Exec(
		`UPDATE tenants
		 SET user_id = ?, full_name = ?, phone = ?, email = ?, identity_number = ?, date_of_birth = ?,
		     permanent_address = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		tenant.UserID,
		tenant.FullName,
		tenant.Phone,
		tenant.Email,
		tenant.IdentityNumber,
		tenant.DateOfBirth,
		tenant.PermanentAddress,
		tenant.Status,
		tenant.UpdatedAt,
		tenant.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM tenants WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Tenant, error) {
	return r.findOne(ctx, db, `id = ?`, id)
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID string) (*domain.Tenant, error) {
	return r.findOne(ctx, db, `user_id = ?`, userID)
}

func (r *repo) FindByIdentityNumber(ctx context.Context, db *gorm.DB, identityNumber string) (*domain.Tenant, error) {
	return r.findOne(ctx, db, `identity_number = ?`, identityNumber)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, where string, arg any) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := db.WithContext(ctx).Raw(`SELECT `+tenantColumns+` FROM tenants WHERE `+where, arg).Scan(&tenant).Error
	if err != nil {
		return nil, err
	}
	if tenant.ID == 0 {
		return nil, nil
	}
	return &tenant, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Tenant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tenants []domain.Tenant
	err := db.WithContext(ctx).Where("id IN ?", ids).Order("full_name asc").Find(&tenants).Error
	return tenants, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	stmt := db.WithContext(ctx).Model(&domain.Tenant{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		like := "%" + q + "%"
		stmt = stmt.Where("LOWER(full_name) LIKE ? OR phone LIKE ?", like, like)
	}
	if err := stmt.Order("created_at desc").Order("id desc").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

func (r *repo) CountContracts(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM contracts c
		 WHERE c.tenant_id = ?
		    OR EXISTS (SELECT 1 FROM contract_tenants ct WHERE ct.contract_id = c.id AND ct.tenant_id = ?)`,
		id, id,
	).Scan(&count).Error
	return count, err
}
