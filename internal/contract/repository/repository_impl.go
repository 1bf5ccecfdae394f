package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/contract/domain"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const contractColumns = `id, code, room_id, tenant_id, start_date, end_date, deposit, monthly_rent, billing_cycle, status,
	notes, activated_at, terminated_at, termination_reason, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, c *domain.Contract) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO contracts (`+contractColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Code,
		c.RoomID,
		c.TenantID,
		c.StartDate,
		c.EndDate,
		c.Deposit,
		c.MonthlyRent,
		c.BillingCycle,
		c.StoredStatus,
		c.Notes,
		c.ActivatedAt,
		c.TerminatedAt,
		c.TerminationReason,
		c.CreatedAt,
		c.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, c *domain.Contract) error {
	return db.WithContext(ctx).Exec(
		`UPDATE contracts
		 SET tenant_id = ?, start_date = ?, end_date = ?, deposit = ?, monthly_rent = ?, billing_cycle = ?, status = ?,
		     notes = ?, activated_at = ?, terminated_at = ?, termination_reason = ?, updated_at = ?
		 WHERE id = ?`,
		c.TenantID,
		c.StartDate,
		c.EndDate,
		c.Deposit,
		c.MonthlyRent,
		c.BillingCycle,
		c.StoredStatus,
		c.Notes,
		c.ActivatedAt,
		c.TerminatedAt,
		c.TerminationReason,
		c.UpdatedAt,
		c.ID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Contract, error) {
	var c domain.Contract
	err := db.WithContext(ctx).Raw(`SELECT `+contractColumns+` FROM contracts WHERE id = ?`, id).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return r.withCoTenants(ctx, db, &c)
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Contract, error) {
	var contracts []domain.Contract
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return nil, nil
	}
	return r.withCoTenants(ctx, db, &contracts[0])
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Contract, error) {
	var c domain.Contract
	err := db.WithContext(ctx).Raw(`SELECT `+contractColumns+` FROM contracts WHERE LOWER(code) = LOWER(?)`, code).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) FindActiveByRoom(ctx context.Context, db *gorm.DB, roomID snowflake.ID) ([]domain.Contract, error) {
	var contracts []domain.Contract
	err := db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, domain.StatusActive).
		Order("start_date desc").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	if err := r.LoadCoTenants(ctx, db, contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *repo) FindActiveEndedBefore(ctx context.Context, db *gorm.DB, day date.Date) ([]domain.Contract, error) {
	var contracts []domain.Contract
	err := db.WithContext(ctx).
		Where("status = ? AND end_date < ?", domain.StatusActive, day).
		Order("end_date asc").
		Order("id asc").
		Find(&contracts).Error
	return contracts, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Contract, error) {
	var contracts []domain.Contract
	stmt := db.WithContext(ctx).Model(&domain.Contract{})
	if filter.RoomID != 0 {
		stmt = stmt.Where("room_id = ?", filter.RoomID)
	}
	if filter.TenantID != 0 {
		stmt = stmt.Where(
			"tenant_id = ? OR id IN (SELECT contract_id FROM contract_tenants WHERE tenant_id = ?)",
			filter.TenantID, filter.TenantID,
		)
	}
	if len(filter.Statuses) > 0 {
		stmt = stmt.Where("status IN ?", filter.Statuses)
	}
	if err := stmt.Order("created_at desc").Order("id desc").Find(&contracts).Error; err != nil {
		return nil, err
	}
	if err := r.LoadCoTenants(ctx, db, contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *repo) ReplaceCoTenants(ctx context.Context, db *gorm.DB, contractID snowflake.ID, tenantIDs []snowflake.ID) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM contract_tenants WHERE contract_id = ?`, contractID).Error; err != nil {
		return err
	}
	for _, tenantID := range tenantIDs {
		if err := db.WithContext(ctx).Exec(
			`INSERT INTO contract_tenants (contract_id, tenant_id) VALUES (?, ?)`,
			contractID, tenantID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) LoadCoTenants(ctx context.Context, db *gorm.DB, contracts []domain.Contract) error {
	if len(contracts) == 0 {
		return nil
	}
	ids := make([]snowflake.ID, 0, len(contracts))
	for _, c := range contracts {
		ids = append(ids, c.ID)
	}
	var rows []domain.ContractTenant
	if err := db.WithContext(ctx).Where("contract_id IN ?", ids).Order("tenant_id asc").Find(&rows).Error; err != nil {
		return err
	}
	byContract := make(map[snowflake.ID][]snowflake.ID, len(contracts))
	for _, row := range rows {
		byContract[row.ContractID] = append(byContract[row.ContractID], row.TenantID)
	}
	for i := range contracts {
		contracts[i].CoTenantIDs = byContract[contracts[i].ID]
		if contracts[i].CoTenantIDs == nil {
			contracts[i].CoTenantIDs = []snowflake.ID{}
		}
	}
	return nil
}

func (r *repo) withCoTenants(ctx context.Context, db *gorm.DB, c *domain.Contract) (*domain.Contract, error) {
	one := []domain.Contract{*c}
	if err := r.LoadCoTenants(ctx, db, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}
