package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const selectPayments = `SELECT p.id, p.invoice_id, p.receipt_number, p.paid_amount, p.payment_date, p.method,
	p.transaction_code, p.note, p.recorded_by, p.created_at, i.code AS invoice_code
	FROM payments p
	LEFT JOIN invoices i ON i.id = p.invoice_id`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, p *domain.Payment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO payments (id, invoice_id, receipt_number, paid_amount, payment_date, method,
			transaction_code, note, recorded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.InvoiceID,
		p.ReceiptNumber,
		p.PaidAmount,
		p.PaymentDate,
		p.Method,
		p.TransactionCode,
		p.Note,
		p.RecordedBy,
		p.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Payment, error) {
	var p domain.Payment
	if err := db.WithContext(ctx).Raw(selectPayments+` WHERE p.id = ?`, id).Scan(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Payment, error) {
	query := selectPayments + ` WHERE 1 = 1`
	args := []any{}
	if filter.InvoiceID != 0 {
		query += ` AND p.invoice_id = ?`
		args = append(args, filter.InvoiceID)
	}
	if len(filter.InvoiceIDs) > 0 {
		query += ` AND p.invoice_id IN ?`
		args = append(args, filter.InvoiceIDs)
	}
	query += ` ORDER BY p.payment_date DESC, p.id DESC`

	var payments []domain.Payment
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
