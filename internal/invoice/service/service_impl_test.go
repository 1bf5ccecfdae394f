package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/snowflake"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	auditdomain "github.com/smallbiznis/boardinghouse/internal/audit/domain"
	auditrepository "github.com/smallbiznis/boardinghouse/internal/audit/repository"
	auditservice "github.com/smallbiznis/boardinghouse/internal/audit/service"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	"github.com/smallbiznis/boardinghouse/internal/config"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	contractrepository "github.com/smallbiznis/boardinghouse/internal/contract/repository"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/smallbiznis/boardinghouse/internal/invoice/repository"
	"github.com/smallbiznis/boardinghouse/internal/providers/pdf"
	"github.com/smallbiznis/boardinghouse/internal/ratelimit"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	roomrepository "github.com/smallbiznis/boardinghouse/internal/room/repository"
	roomservicedomain "github.com/smallbiznis/boardinghouse/internal/roomservice/domain"
	roomservicerepository "github.com/smallbiznis/boardinghouse/internal/roomservice/repository"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	tenantrepository "github.com/smallbiznis/boardinghouse/internal/tenant/repository"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/smallbiznis/boardinghouse/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	houseID       snowflake.ID = 1
	roomID        snowflake.ID = 10
	tenantID      snowflake.ID = 20
	contractID    snowflake.ID = 30
	electricityID snowflake.ID = 40
	internetID    snowflake.ID = 41
)

type fixture struct {
	svc      domain.Service
	db       *gorm.DB
	clock    *clock.FakeClock
	audit    auditdomain.Service
	contract string
}

type fixtureOption func(*Params)

func withLocker(l *ratelimit.Locker) fixtureOption {
	return func(p *Params) { p.Locker = l }
}

func newFixture(t *testing.T, opts ...fixtureOption) fixture {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&boardinghousedomain.BoardingHouse{},
		&roomdomain.Room{},
		&tenantdomain.Tenant{},
		&contractdomain.Contract{},
		&contractdomain.ContractTenant{},
		&servicetypedomain.ServiceType{},
		&roomservicedomain.RoomService{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
		&auditdomain.AuditLog{},
	))
	require.NoError(t, conn.Exec(`CREATE TABLE payments (id INTEGER PRIMARY KEY, invoice_id INTEGER NOT NULL)`).Error)

	clk := clock.NewFakeClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	now := clk.Now()
	electricityPrice := decimal.NewFromInt(3_500)
	require.NoError(t, conn.Create(&boardinghousedomain.BoardingHouse{ID: houseID, Name: "Sunshine Boarding House", Slug: "sunshine-boarding-house", Address: "12 Le Loi", NumberOfFloors: 2, CreatedAt: now, UpdatedAt: now}).Error)
	require.NoError(t, conn.Create(&roomdomain.Room{ID: roomID, BoardingHouseID: houseID, Code: "R101", Floor: 1, MaxOccupants: 2, BaseRent: decimal.NewFromInt(3_000_000), Status: roomdomain.StatusOccupied, CreatedAt: now, UpdatedAt: now}).Error)
	require.NoError(t, conn.Create(&tenantdomain.Tenant{ID: tenantID, FullName: "Nguyen Van A", Phone: "0901234567", Status: tenantdomain.StatusActive, CreatedAt: now, UpdatedAt: now}).Error)
	require.NoError(t, conn.Create(&contractdomain.Contract{
		ID:           contractID,
		Code:         "CT-2024-001",
		RoomID:       roomID,
		TenantID:     tenantID,
		StartDate:    date.New(2024, 1, 1),
		EndDate:      date.New(2024, 12, 31),
		Deposit:      decimal.NewFromInt(6_000_000),
		MonthlyRent:  decimal.NewFromInt(3_000_000),
		BillingCycle: contractdomain.BillingCycleMonthly,
		StoredStatus: contractdomain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error)
	require.NoError(t, conn.Create(&servicetypedomain.ServiceType{ID: electricityID, Name: "Electricity", Category: servicetypedomain.CategoryElectricity, Unit: "kWh", PricePerUnit: decimal.NewFromInt(3_000), IsActive: true, CreatedAt: now, UpdatedAt: now}).Error)
	require.NoError(t, conn.Create(&roomservicedomain.RoomService{ID: 50, RoomID: roomID, ServiceTypeID: electricityID, PricePerUnit: &electricityPrice, CreatedAt: now, UpdatedAt: now}).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	audit := auditservice.NewService(auditservice.Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  auditrepository.Provide(),
	})
	params := Params{
		DB:              conn,
		Log:             zap.NewNop(),
		GenID:           node,
		Clock:           clk,
		Repo:            repository.Provide(),
		ContractRepo:    contractrepository.Provide(),
		RoomRepo:        roomrepository.Provide(),
		RoomServiceRepo: roomservicerepository.Provide(),
		TenantRepo:      tenantrepository.Provide(),
		AuditSvc:        audit,
		Billing:         config.NewStaticBillingConfig(config.DefaultBillingConfig()),
		PDF:             pdf.New(),
	}
	for _, opt := range opts {
		opt(&params)
	}
	return fixture{svc: New(params), db: conn, clock: clk, audit: audit, contract: contractID.String()}
}

func (f fixture) withReadings(month int, oldIndex, newIndex int64) domain.GenerateWithReadingsRequest {
	return domain.GenerateWithReadingsRequest{
		ContractID: f.contract,
		Month:      month,
		Year:       2024,
		Readings: []domain.Reading{{
			ServiceTypeID: electricityID,
			OldIndex:      decimal.NewFromInt(oldIndex),
			NewIndex:      decimal.NewFromInt(newIndex),
		}},
	}
}

func (f fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Table(table).Count(&n).Error)
	return n
}

func TestGenerateWithReadings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	invoice, err := f.svc.GenerateWithReadings(ctx, f.withReadings(3, 100, 150))
	require.NoError(t, err)

	assert.Equal(t, "INV-CT-2024-001-03-2024", invoice.Code)
	assert.Equal(t, date.New(2024, 3, 31), invoice.DueDate)
	assert.Equal(t, "VND", invoice.Currency)
	assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(3_175_000)), invoice.TotalAmount.String())
	assert.True(t, invoice.RemainingAmount.Equal(invoice.TotalAmount))
	assert.True(t, invoice.PaidAmount.IsZero())
	assert.Equal(t, domain.InvoiceStatusUnpaid, invoice.Status)
	require.Len(t, invoice.Items, 2)
	assert.True(t, invoice.Items[0].Amount.Equal(decimal.NewFromInt(3_000_000)))
	assert.True(t, invoice.Items[1].Amount.Equal(decimal.NewFromInt(175_000)))

	stored, err := f.svc.GetByID(ctx, invoice.ID.String())
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	sum := decimal.Zero
	for _, item := range stored.Items {
		sum = sum.Add(item.Amount)
	}
	assert.True(t, stored.TotalAmount.Equal(sum))
	assert.Equal(t, "Monthly Rent", stored.Items[0].Description)
	require.NotNil(t, stored.Items[1].NewIndex)
	assert.True(t, stored.Items[1].NewIndex.Equal(decimal.NewFromInt(150)))

	logs, err := f.audit.List(ctx, auditdomain.ListAuditLogRequest{Action: auditdomain.ActionInvoiceGenerate})
	require.NoError(t, err)
	require.Len(t, logs.AuditLogs, 1)
	assert.Equal(t, invoice.ID.String(), logs.AuditLogs[0].TargetID)
}

func TestGenerateDuplicatePeriodConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GenerateWithReadings(ctx, f.withReadings(3, 100, 150))
	require.NoError(t, err)

	_, err = f.svc.GenerateWithReadings(ctx, f.withReadings(3, 150, 160))
	require.Error(t, err)
	assert.True(t, ierr.IsConflict(err))
	assert.ErrorIs(t, err, domain.ErrDuplicatePeriod)
	assert.NotErrorIs(t, err, domain.ErrInvoiceBusy)

	_, err = f.svc.Generate(ctx, domain.GenerateRequest{ContractID: f.contract, Month: 3, Year: 2024})
	assert.ErrorIs(t, err, domain.ErrDuplicatePeriod)
	assert.EqualValues(t, 1, f.count(t, "invoices"))
}

func TestGenerateRejectsBeforeWriting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GenerateWithReadings(ctx, f.withReadings(3, 150, 100))
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidInput(err))

	req := f.withReadings(3, 0, 0)
	req.Readings = nil
	_, err = f.svc.GenerateWithReadings(ctx, req)
	require.Error(t, err)
	assert.True(t, ierr.IsMissingInput(err))

	assert.Zero(t, f.count(t, "invoices"))
	assert.Zero(t, f.count(t, "invoice_items"))
}

func TestGeneratePlaceholderMeteredLines(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()
	internetPrice := decimal.NewFromInt(200_000)
	require.NoError(t, f.db.Create(&servicetypedomain.ServiceType{ID: internetID, Name: "Internet", Category: servicetypedomain.CategoryFixed, PricePerUnit: decimal.NewFromInt(150_000), IsActive: true, CreatedAt: now, UpdatedAt: now}).Error)
	require.NoError(t, f.db.Create(&roomservicedomain.RoomService{ID: 51, RoomID: roomID, ServiceTypeID: internetID, FixedPrice: &internetPrice, CreatedAt: now, UpdatedAt: now}).Error)

	invoice, err := f.svc.Generate(context.Background(), domain.GenerateRequest{ContractID: f.contract, Month: 3, Year: 2024})
	require.NoError(t, err)
	require.Len(t, invoice.Items, 3)

	byType := map[string]domain.InvoiceItem{}
	for _, item := range invoice.Items {
		byType[item.Type] = item
	}
	assert.True(t, byType["ELECTRICITY"].Quantity.IsZero())
	assert.True(t, byType["ELECTRICITY"].Amount.IsZero())
	assert.True(t, byType["FIXED"].Amount.Equal(internetPrice))
	assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(3_200_000)))
}

func TestGenerateContractPreconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, domain.GenerateRequest{ContractID: "999", Month: 3, Year: 2024})
	assert.True(t, ierr.IsNotFound(err))
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
	assert.NotErrorIs(t, err, domain.ErrInvoiceNotFound)

	_, err = f.svc.Generate(ctx, domain.GenerateRequest{ContractID: "abc", Month: 3, Year: 2024})
	assert.True(t, ierr.IsInvalidInput(err))
	assert.ErrorIs(t, err, domain.ErrInvalidContractID)
	assert.NotErrorIs(t, err, domain.ErrInvalidInvoiceID)

	_, err = f.svc.Generate(ctx, domain.GenerateRequest{ContractID: f.contract, Month: 13, Year: 2024})
	assert.True(t, ierr.IsInvalidInput(err))

	require.NoError(t, f.db.Exec(`UPDATE contracts SET status = ? WHERE id = ?`, contractdomain.StatusDraft, contractID).Error)
	_, err = f.svc.Generate(ctx, domain.GenerateRequest{ContractID: f.contract, Month: 3, Year: 2024})
	assert.True(t, ierr.IsInvalidState(err))
	assert.ErrorIs(t, err, domain.ErrContractNotActive)
	assert.NotErrorIs(t, err, domain.ErrRoomHasOtherActive)
	assert.NotErrorIs(t, err, domain.ErrHasPayments)
}

func TestGenerateRejectsExpiredContract(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))

	_, err := f.svc.Generate(context.Background(), domain.GenerateRequest{ContractID: f.contract, Month: 12, Year: 2024})
	assert.ErrorIs(t, err, domain.ErrContractNotActive)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	preview, err := f.svc.Preview(ctx, f.withReadings(3, 100, 150))
	require.NoError(t, err)
	assert.True(t, preview.TotalAmount.Equal(decimal.NewFromInt(3_175_000)))
	assert.Zero(t, f.count(t, "invoices"))

	_, err = f.svc.Preview(ctx, f.withReadings(3, 150, 100))
	assert.True(t, ierr.IsInvalidInput(err))
}

func TestOverdueIsDerivedOnRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	invoice, err := f.svc.GenerateWithReadings(ctx, f.withReadings(3, 100, 150))
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusUnpaid, invoice.Status)

	f.clock.Set(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
	got, err := f.svc.GetByID(ctx, invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusOverdue, got.Status)
	assert.Equal(t, 2, got.DaysOverdue(clock.Today(f.clock)))

	overdue, err := f.svc.List(ctx, domain.ListInvoiceRequest{Status: "overdue"})
	require.NoError(t, err)
	require.Len(t, overdue.Invoices, 1)
	assert.Equal(t, domain.InvoiceStatusOverdue, overdue.Invoices[0].Status)

	unpaid, err := f.svc.List(ctx, domain.ListInvoiceRequest{Status: "UNPAID"})
	require.NoError(t, err)
	assert.Empty(t, unpaid.Invoices)

	_, err = f.svc.List(ctx, domain.ListInvoiceRequest{Status: "LATE"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestListPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for month := 1; month <= 3; month++ {
		_, err := f.svc.Generate(ctx, domain.GenerateRequest{ContractID: f.contract, Month: month, Year: 2024})
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
	}

	first, err := f.svc.List(ctx, domain.ListInvoiceRequest{Pagination: pagination.Pagination{PageSize: 2}})
	require.NoError(t, err)
	require.Len(t, first.Invoices, 2)
	assert.True(t, first.HasMore)
	assert.Equal(t, 3, first.Invoices[0].PeriodMonth)

	second, err := f.svc.List(ctx, domain.ListInvoiceRequest{Pagination: pagination.Pagination{PageSize: 2, PageToken: first.NextPageToken}})
	require.NoError(t, err)
	require.Len(t, second.Invoices, 1)
	assert.False(t, second.HasMore)
	assert.Equal(t, 1, second.Invoices[0].PeriodMonth)

	_, err = f.svc.List(ctx, domain.ListInvoiceRequest{Pagination: pagination.Pagination{PageToken: "%%%"}})
	assert.ErrorIs(t, err, domain.ErrInvalidPageToken)

	byContract, err := f.svc.ListByContract(ctx, f.contract)
	require.NoError(t, err)
	assert.Len(t, byContract, 3)
}

func TestDeleteRequiresNoPayments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	paid, err := f.svc.Generate(ctx, domain.GenerateRequest{ContractID: f.contract, Month: 1, Year: 2024})
	require.NoError(t, err)
	require.NoError(t, f.db.Exec(`INSERT INTO payments (id, invoice_id) VALUES (1, ?)`, paid.ID).Error)
	err = f.svc.Delete(ctx, paid.ID.String())
	assert.ErrorIs(t, err, domain.ErrHasPayments)

	open, err := f.svc.Generate(ctx, domain.GenerateRequest{ContractID: f.contract, Month: 2, Year: 2024})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, open.ID.String()))
	_, err = f.svc.GetByID(ctx, open.ID.String())
	assert.True(t, ierr.IsNotFound(err))

	var items int64
	require.NoError(t, f.db.Table("invoice_items").Where("invoice_id = ?", open.ID).Count(&items).Error)
	assert.Zero(t, items)
}

func TestGenerateHeldLockIsBusy(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	f := newFixture(t, withLocker(ratelimit.NewLocker(client)))

	require.NoError(t, mr.Set("boardinghouse:lock:contract:"+contractID.String()+":2024-03", "other"))
	_, err := f.svc.Generate(context.Background(), domain.GenerateRequest{ContractID: f.contract, Month: 3, Year: 2024})
	assert.ErrorIs(t, err, domain.ErrInvoiceBusy)
	assert.NotErrorIs(t, err, domain.ErrDuplicatePeriod)

	mr.Del("boardinghouse:lock:contract:" + contractID.String() + ":2024-03")
	_, err = f.svc.Generate(context.Background(), domain.GenerateRequest{ContractID: f.contract, Month: 3, Year: 2024})
	require.NoError(t, err)
	assert.False(t, mr.Exists("boardinghouse:lock:contract:"+contractID.String()+":2024-03"))
}

func TestRenderPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	invoice, err := f.svc.GenerateWithReadings(ctx, f.withReadings(3, 100, 150))
	require.NoError(t, err)

	out, err := f.svc.RenderPDF(ctx, invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "INV-CT-2024-001-03-2024.pdf", out.FileName)
	assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF")))
}
