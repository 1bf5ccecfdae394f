package service

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	auditdomain "github.com/smallbiznis/boardinghouse/internal/audit/domain"
	auditrepository "github.com/smallbiznis/boardinghouse/internal/audit/repository"
	auditservice "github.com/smallbiznis/boardinghouse/internal/audit/service"
	"github.com/smallbiznis/boardinghouse/internal/auth"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	"github.com/smallbiznis/boardinghouse/internal/config"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	contractrepository "github.com/smallbiznis/boardinghouse/internal/contract/repository"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	invoicerepository "github.com/smallbiznis/boardinghouse/internal/invoice/repository"
	"github.com/smallbiznis/boardinghouse/internal/payment/domain"
	"github.com/smallbiznis/boardinghouse/internal/payment/repository"
	"github.com/smallbiznis/boardinghouse/internal/providers/pdf"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	roomrepository "github.com/smallbiznis/boardinghouse/internal/room/repository"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	tenantrepository "github.com/smallbiznis/boardinghouse/internal/tenant/repository"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const invoiceID snowflake.ID = 500

type fixture struct {
	svc   domain.Service
	db    *gorm.DB
	clock *clock.FakeClock
	audit auditdomain.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&boardinghousedomain.BoardingHouse{},
		&roomdomain.Room{},
		&tenantdomain.Tenant{},
		&contractdomain.Contract{},
		&contractdomain.ContractTenant{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&domain.Payment{},
		&auditdomain.AuditLog{},
	))

	clk := clock.NewFakeClock(time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC))
	now := clk.Now()
	require.NoError(t, conn.Create(&boardinghousedomain.BoardingHouse{ID: 1, Name: "Sunshine Boarding House", Slug: "sunshine-boarding-house", NumberOfFloors: 2, CreatedAt: now, UpdatedAt: now}).Error)
	require.NoError(t, conn.Create(&roomdomain.Room{ID: 2, BoardingHouseID: 1, Code: "R101", Floor: 1, MaxOccupants: 2, BaseRent: decimal.NewFromInt(3_000_000), Status: roomdomain.StatusOccupied, CreatedAt: now, UpdatedAt: now}).Error)
	require.NoError(t, conn.Create(&tenantdomain.Tenant{ID: 3, FullName: "Nguyen Van A", Phone: "0901234567", Status: tenantdomain.StatusActive, CreatedAt: now, UpdatedAt: now}).Error)
	require.NoError(t, conn.Create(&contractdomain.Contract{ID: 4, Code: "CT-2024-001", RoomID: 2, TenantID: 3, StartDate: date.New(2024, 1, 1), EndDate: date.New(2024, 12, 31), Deposit: decimal.NewFromInt(6_000_000), MonthlyRent: decimal.NewFromInt(3_000_000), BillingCycle: contractdomain.BillingCycleMonthly, StoredStatus: contractdomain.StatusActive, CreatedAt: now, UpdatedAt: now}).Error)

	invoiceRepo := invoicerepository.Provide()
	total := decimal.NewFromInt(3_175_000)
	require.NoError(t, invoiceRepo.InsertWithItems(context.Background(), conn, &invoicedomain.Invoice{
		ID:               invoiceID,
		Code:             "INV-CT-2024-001-03-2024",
		ContractID:       4,
		PeriodMonth:      3,
		PeriodYear:       2024,
		DueDate:          date.New(2024, 3, 31),
		Currency:         "VND",
		TotalAmount:      total,
		PaidAmount:       decimal.Zero,
		SettlementStatus: invoicedomain.InvoiceStatusUnpaid,
		CreatedAt:        now,
		UpdatedAt:        now,
		Items: []invoicedomain.InvoiceItem{{
			ID:          501,
			Type:        invoicedomain.ItemTypeRent,
			Description: "Monthly Rent",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   total,
			Amount:      total,
			CreatedAt:   now,
		}},
	}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	audit := auditservice.NewService(auditservice.Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  auditrepository.Provide(),
	})
	svc := New(Params{
		DB:           conn,
		Log:          zap.NewNop(),
		GenID:        node,
		Clock:        clk,
		Repo:         repository.Provide(),
		InvoiceRepo:  invoiceRepo,
		ContractRepo: contractrepository.Provide(),
		RoomRepo:     roomrepository.Provide(),
		TenantRepo:   tenantrepository.Provide(),
		AuditSvc:     audit,
		Billing:      config.NewStaticBillingConfig(config.DefaultBillingConfig()),
		PDF:          pdf.New(),
	})
	return fixture{svc: svc, db: conn, clock: clk, audit: audit}
}

func (f fixture) invoice(t *testing.T) invoicedomain.Invoice {
	t.Helper()
	inv, err := invoicerepository.Provide().FindByID(context.Background(), f.db, invoiceID)
	require.NoError(t, err)
	require.NotNil(t, inv)
	return *inv.Resolve(clock.Today(f.clock))
}

func pay(amount int64) domain.CreateRequest {
	return domain.CreateRequest{
		InvoiceID:  invoiceID.String(),
		PaidAmount: decimal.NewFromInt(amount),
		Method:     "cash",
	}
}

func TestApplyFullPayment(t *testing.T) {
	f := newFixture(t)
	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: "admin-1", Roles: []string{auth.RoleAdmin}})

	payment, err := f.svc.Apply(ctx, pay(3_175_000))
	require.NoError(t, err)
	assert.Equal(t, domain.MethodCash, payment.Method)
	assert.Equal(t, "admin-1", payment.RecordedBy)
	assert.Contains(t, payment.ReceiptNumber, "RCPT-")
	assert.Equal(t, f.clock.Now(), payment.PaymentDate)
	assert.Equal(t, "INV-CT-2024-001-03-2024", payment.InvoiceCode)

	inv := f.invoice(t)
	assert.Equal(t, invoicedomain.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.RemainingAmount.IsZero())

	logs, err := f.audit.List(ctx, auditdomain.ListAuditLogRequest{Action: auditdomain.ActionPaymentApply})
	require.NoError(t, err)
	require.Len(t, logs.AuditLogs, 1)
}

func TestPartialPaymentsMatchSinglePayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, pay(1_000_000))
	require.NoError(t, err)
	partial := f.invoice(t)
	assert.Equal(t, invoicedomain.InvoiceStatusPartiallyPaid, partial.Status)
	assert.True(t, partial.RemainingAmount.Equal(decimal.NewFromInt(2_175_000)))

	_, err = f.svc.Apply(ctx, pay(2_175_000))
	require.NoError(t, err)
	final := f.invoice(t)

	single := newFixture(t)
	_, err = single.svc.Apply(ctx, pay(3_175_000))
	require.NoError(t, err)
	want := single.invoice(t)

	assert.Equal(t, want.Status, final.Status)
	assert.True(t, want.PaidAmount.Equal(final.PaidAmount))
	assert.True(t, want.RemainingAmount.Equal(final.RemainingAmount))

	payments, err := f.svc.ListByInvoice(ctx, invoiceID.String())
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestOverpaymentLeavesInvoiceUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, pay(1_000_000))
	require.NoError(t, err)
	before := f.invoice(t)

	_, err = f.svc.Apply(ctx, pay(2_175_001))
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidInput(err))
	assert.Equal(t, "2175000", ierr.ReportableDetails(err)["remainingAmount"])

	after := f.invoice(t)
	assert.True(t, before.PaidAmount.Equal(after.PaidAmount))
	assert.Equal(t, before.SettlementStatus, after.SettlementStatus)

	payments, err := f.svc.ListByInvoice(ctx, invoiceID.String())
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestApplyRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, pay(0))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.Apply(ctx, pay(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	req := pay(100)
	req.Method = "CHEQUE"
	_, err = f.svc.Apply(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)

	req = pay(100)
	req.PaidAmount = decimal.RequireFromString("100.5")
	_, err = f.svc.Apply(ctx, req)
	assert.True(t, ierr.IsInvalidInput(err))

	req = pay(100)
	req.InvoiceID = "12345"
	_, err = f.svc.Apply(ctx, req)
	assert.True(t, ierr.IsNotFound(err))

	_, err = f.svc.Apply(ctx, pay(3_175_000))
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, pay(1))
	assert.True(t, ierr.IsInvalidState(err))
	assert.ErrorIs(t, err, domain.ErrInvoicePaid)
}

func TestOverdueClearsOncePaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.clock.Set(time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, invoicedomain.InvoiceStatusOverdue, f.invoice(t).Status)

	_, err := f.svc.Apply(ctx, pay(1_000_000))
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.InvoiceStatusOverdue, f.invoice(t).Status)

	_, err = f.svc.Apply(ctx, pay(2_175_000))
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.InvoiceStatusPaid, f.invoice(t).Status)
}

func TestConcurrentPaymentsNeverOverpay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Apply(ctx, pay(1_000_000))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 3, succeeded)

	inv := f.invoice(t)
	assert.True(t, inv.PaidAmount.Equal(decimal.NewFromInt(int64(succeeded)*1_000_000)))
	assert.False(t, inv.PaidAmount.GreaterThan(inv.TotalAmount))
}

func TestGetAndReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	paid := time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)
	req := pay(1_000_000)
	req.PaymentDate = &paid
	req.Method = "BANK_TRANSFER"
	req.TransactionCode = "FT2403180001"
	payment, err := f.svc.Apply(ctx, req)
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, payment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "FT2403180001", got.TransactionCode)
	assert.True(t, got.PaymentDate.Equal(paid))
	assert.Equal(t, "system", got.RecordedBy)

	_, err = f.svc.Get(ctx, "77")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	receipt, err := f.svc.RenderReceipt(ctx, payment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, payment.ReceiptNumber+".pdf", receipt.FileName)
	assert.True(t, bytes.HasPrefix(receipt.Content, []byte("%PDF")))
}
