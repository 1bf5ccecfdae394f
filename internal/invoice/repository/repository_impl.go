package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertWithItems(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	if invoice == nil {
		return nil
	}
	err := db.WithContext(ctx).Exec(
		`INSERT INTO invoices (id, code, contract_id, period_month, period_year, due_date, currency,
			total_amount, paid_amount, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.Code,
		invoice.ContractID,
		invoice.PeriodMonth,
		invoice.PeriodYear,
		invoice.DueDate,
		invoice.Currency,
		invoice.TotalAmount,
		invoice.PaidAmount,
		invoice.SettlementStatus,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	).Error
	if err != nil {
		return err
	}

	for _, item := range invoice.Items {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO invoice_items (id, invoice_id, position, type, service_type_id, description, unit,
				old_index, new_index, quantity, unit_price, amount, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			invoice.ID,
			item.Position,
			item.Type,
			item.ServiceTypeID,
			item.Description,
			item.Unit,
			item.OldIndex,
			item.NewIndex,
			item.Quantity,
			item.UnitPrice,
			item.Amount,
			item.CreatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(`SELECT * FROM invoices WHERE id = ?`, id).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, nil
	}
	return &invoices[0], nil
}

func (r *repo) FindByPeriod(ctx context.Context, db *gorm.DB, contractID snowflake.ID, month, year int) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM invoices WHERE contract_id = ? AND period_month = ? AND period_year = ?`,
		contractID, month, year,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})

	if filter.ContractID != 0 {
		stmt = stmt.Where("contract_id = ?", filter.ContractID)
	}
	if len(filter.ContractIDs) > 0 {
		stmt = stmt.Where("contract_id IN ?", filter.ContractIDs)
	}
	if filter.Month > 0 {
		stmt = stmt.Where("period_month = ?", filter.Month)
	}
	if filter.Year > 0 {
		stmt = stmt.Where("period_year = ?", filter.Year)
	}
	if len(filter.Statuses) > 0 {
		stmt = stmt.Where("status IN ?", filter.Statuses)
	}
	if filter.DueBefore != nil {
		stmt = stmt.Where("due_date < ?", *filter.DueBefore)
	}
	if filter.DueFrom != nil {
		stmt = stmt.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.Cursor != nil {
		stmt = stmt.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			filter.Cursor.CreatedAt,
			filter.Cursor.CreatedAt,
			filter.Cursor.ID,
		)
	}

	stmt = stmt.Order("created_at desc, id desc")
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit + 1)
	}

	if err := stmt.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.InvoiceItem, error) {
	var items []domain.InvoiceItem
	err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("position asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateSettlement(ctx context.Context, db *gorm.DB, invoice *domain.Invoice, expectedPaid decimal.Decimal) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE invoices SET paid_amount = ?, status = ?, updated_at = ? WHERE id = ? AND paid_amount = ?`,
		invoice.PaidAmount,
		invoice.SettlementStatus,
		invoice.UpdatedAt,
		invoice.ID,
		expectedPaid,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM invoice_items WHERE invoice_id = ?`, id).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(`DELETE FROM invoices WHERE id = ?`, id).Error
}

func (r *repo) CountPayments(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM payments WHERE invoice_id = ?`, id).Scan(&count).Error
	return count, err
}
