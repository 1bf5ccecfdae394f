package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	contractrepository "github.com/smallbiznis/boardinghouse/internal/contract/repository"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	reportdomain "github.com/smallbiznis/boardinghouse/internal/report/domain"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	tenantrepository "github.com/smallbiznis/boardinghouse/internal/tenant/repository"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc reportdomain.Service
	db  *gorm.DB
	now time.Time
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
	))

	clk := clock.NewFakeClock(time.Date(2024, 4, 10, 8, 0, 0, 0, time.UTC))
	now := clk.Now()
	for _, h := range []boardinghousedomain.BoardingHouse{
		{ID: 1, Name: "Sunshine Boarding House", Slug: "sunshine-boarding-house"},
		{ID: 2, Name: "Moonlight Residence", Slug: "moonlight-residence"},
	} {
		h.CreatedAt, h.UpdatedAt = now, now
		require.NoError(t, conn.Create(&h).Error)
	}
	for _, r := range []roomdomain.Room{
		{ID: 10, BoardingHouseID: 1, Code: "R101"},
		{ID: 11, BoardingHouseID: 1, Code: "R102"},
		{ID: 12, BoardingHouseID: 2, Code: "M201"},
	} {
		r.BaseRent, r.Status, r.CreatedAt, r.UpdatedAt = decimal.NewFromInt(3_000_000), roomdomain.StatusOccupied, now, now
		require.NoError(t, conn.Create(&r).Error)
	}
	for _, tn := range []tenantdomain.Tenant{
		{ID: 20, FullName: "Nguyen Van A", Phone: "0901", Status: tenantdomain.StatusActive},
		{ID: 21, FullName: "Tran Thi B", Phone: "0902", Status: tenantdomain.StatusActive},
		{ID: 22, FullName: "Le Van C", Phone: "0903", Status: tenantdomain.StatusInactive},
		{ID: 23, FullName: "Pham Van D", Phone: "0904", Status: tenantdomain.StatusActive},
	} {
		tn.CreatedAt, tn.UpdatedAt = now, now
		require.NoError(t, conn.Create(&tn).Error)
	}
	contracts := []contractdomain.Contract{
		{ID: 30, Code: "CT-1", RoomID: 10, TenantID: 20, StartDate: date.New(2024, 1, 1), EndDate: date.New(2024, 12, 31), StoredStatus: contractdomain.StatusActive},
		{ID: 31, Code: "CT-2", RoomID: 12, TenantID: 21, StartDate: date.New(2024, 1, 1), EndDate: date.New(2024, 12, 31), StoredStatus: contractdomain.StatusActive},
		// ended before today but not yet reconciled
		{ID: 32, Code: "CT-3", RoomID: 11, TenantID: 23, StartDate: date.New(2023, 4, 1), EndDate: date.New(2024, 3, 31), StoredStatus: contractdomain.StatusActive},
	}
	for _, c := range contracts {
		c.MonthlyRent, c.Deposit, c.BillingCycle, c.CreatedAt, c.UpdatedAt = decimal.NewFromInt(3_000_000), decimal.Zero, contractdomain.BillingCycleMonthly, now, now
		require.NoError(t, conn.Create(&c).Error)
	}
	require.NoError(t, conn.Create(&contractdomain.ContractTenant{ContractID: 30, TenantID: 22}).Error)
	require.NoError(t, conn.Create(&contractdomain.ContractTenant{ContractID: 31, TenantID: 20}).Error)

	return fixture{
		svc: NewService(Params{
			DB:           conn,
			Log:          zap.NewNop(),
			Clock:        clk,
			ContractRepo: contractrepository.Provide(),
			TenantRepo:   tenantrepository.Provide(),
		}),
		db:  conn,
		now: now,
	}
}

func (f fixture) invoice(t *testing.T, id, contractID snowflake.ID, month, year int, total, paid int64) {
	t.Helper()
	inv := invoicedomain.Invoice{
		ID:          id,
		Code:        "INV-" + id.String(),
		ContractID:  contractID,
		PeriodMonth: month,
		PeriodYear:  year,
		DueDate:     date.New(year, time.Month(month), 1).AddDays(27),
		Currency:    "VND",
		TotalAmount: decimal.NewFromInt(total),
		PaidAmount:  decimal.NewFromInt(paid),
		CreatedAt:   f.now,
		UpdatedAt:   f.now,
	}
	inv.SettlementStatus = invoicedomain.Settle(inv.TotalAmount, inv.PaidAmount)
	require.NoError(t, f.db.Create(&inv).Error)
}

func TestRevenueByMonth(t *testing.T) {
	f := newFixture(t)
	f.invoice(t, 100, 30, 1, 2024, 3_175_000, 3_175_000)
	f.invoice(t, 101, 31, 1, 2024, 3_000_000, 1_000_000)
	f.invoice(t, 102, 30, 3, 2024, 3_200_000, 0)
	f.invoice(t, 103, 30, 12, 2023, 9_999_999, 9_999_999)

	months, err := f.svc.RevenueByMonth(context.Background(), reportdomain.RevenueByMonthRequest{Year: 2024})
	require.NoError(t, err)
	require.Len(t, months, 12)

	jan := months[0]
	assert.Equal(t, 1, jan.Month)
	assert.Equal(t, 2024, jan.Year)
	assert.True(t, decimal.NewFromInt(6_175_000).Equal(jan.TotalRevenue), jan.TotalRevenue.String())
	assert.True(t, decimal.NewFromInt(4_175_000).Equal(jan.PaidRevenue), jan.PaidRevenue.String())
	assert.Equal(t, 2, jan.InvoiceCount)
	assert.Equal(t, 1, jan.PaidInvoiceCount)

	feb := months[1]
	assert.Equal(t, 2, feb.Month)
	assert.Equal(t, 0, feb.InvoiceCount)
	assert.True(t, feb.TotalRevenue.IsZero())

	assert.Equal(t, 1, months[2].InvoiceCount)
	assert.Equal(t, 0, months[11].InvoiceCount)
}

func TestRevenueByMonthDefaultsToCurrentYear(t *testing.T) {
	f := newFixture(t)
	f.invoice(t, 100, 30, 4, 2024, 3_000_000, 0)

	months, err := f.svc.RevenueByMonth(context.Background(), reportdomain.RevenueByMonthRequest{})
	require.NoError(t, err)
	require.Len(t, months, 12)
	assert.Equal(t, 2024, months[3].Year)
	assert.Equal(t, 1, months[3].InvoiceCount)
}

func TestRevenueByBoardingHouse(t *testing.T) {
	f := newFixture(t)
	f.invoice(t, 100, 30, 1, 2024, 3_000_000, 3_000_000)
	f.invoice(t, 101, 30, 2, 2024, 3_000_000, 0)
	f.invoice(t, 102, 31, 2, 2024, 4_000_000, 4_000_000)
	f.invoice(t, 103, 31, 5, 2024, 4_000_000, 0)

	houses, err := f.svc.RevenueByBoardingHouse(context.Background(), reportdomain.RevenueByBoardingHouseRequest{
		StartDate: "2024-01-01",
		EndDate:   "2024-03-31",
	})
	require.NoError(t, err)
	require.Len(t, houses, 2)

	assert.Equal(t, "Moonlight Residence", houses[0].BoardingHouseName)
	assert.Equal(t, 1, houses[0].InvoiceCount)
	assert.Equal(t, 1, houses[0].PaidInvoiceCount)

	assert.Equal(t, snowflake.ID(1), houses[1].BoardingHouseID)
	assert.Equal(t, 2, houses[1].InvoiceCount)
	assert.Equal(t, 1, houses[1].PaidInvoiceCount)
	assert.True(t, decimal.NewFromInt(6_000_000).Equal(houses[1].TotalRevenue))
	assert.True(t, decimal.NewFromInt(3_000_000).Equal(houses[1].PaidRevenue))
}

func TestRevenueByBoardingHouseUsesPeriodStart(t *testing.T) {
	f := newFixture(t)
	f.invoice(t, 100, 30, 1, 2024, 3_000_000, 0)
	f.invoice(t, 101, 30, 2, 2024, 3_000_000, 0)

	houses, err := f.svc.RevenueByBoardingHouse(context.Background(), reportdomain.RevenueByBoardingHouseRequest{
		StartDate: "2024-01-15",
		EndDate:   "2024-02-01",
	})
	require.NoError(t, err)
	require.Len(t, houses, 1)
	assert.Equal(t, 1, houses[0].InvoiceCount)
}

func TestRevenueByBoardingHouseValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RevenueByBoardingHouse(ctx, reportdomain.RevenueByBoardingHouseRequest{StartDate: "2024-01-01"})
	assert.True(t, ierr.IsMissingInput(err))

	_, err = f.svc.RevenueByBoardingHouse(ctx, reportdomain.RevenueByBoardingHouseRequest{StartDate: "01/01/2024", EndDate: "2024-02-01"})
	assert.True(t, ierr.IsInvalidInput(err))

	_, err = f.svc.RevenueByBoardingHouse(ctx, reportdomain.RevenueByBoardingHouseRequest{StartDate: "2024-03-01", EndDate: "2024-02-01"})
	assert.ErrorIs(t, err, reportdomain.ErrInvalidRange)
}

func TestTenantsCurrentlyRenting(t *testing.T) {
	f := newFixture(t)

	tenants, err := f.svc.TenantsCurrentlyRenting(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(tenants))
	for _, tn := range tenants {
		names = append(names, tn.FullName)
	}
	// Le Van C is INACTIVE, Pham Van D's contract ended on 2024-03-31.
	assert.Equal(t, []string{"Nguyen Van A", "Tran Thi B"}, names)
}

func TestOutstandingDebts(t *testing.T) {
	f := newFixture(t)
	f.invoice(t, 100, 30, 1, 2024, 3_000_000, 1_000_000) // due 2024-01-28
	f.invoice(t, 101, 31, 3, 2024, 4_000_000, 0)         // due 2024-03-28
	f.invoice(t, 102, 30, 4, 2024, 3_000_000, 0)         // due 2024-04-28
	f.invoice(t, 103, 31, 2, 2024, 4_000_000, 4_000_000)

	report, err := f.svc.OutstandingDebts(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Debts, 3)

	assert.Equal(t, 3, report.InvoiceCount)
	assert.Equal(t, 2, report.OverdueCount)
	assert.True(t, decimal.NewFromInt(9_000_000).Equal(report.TotalOutstanding), report.TotalOutstanding.String())

	first := report.Debts[0]
	assert.Equal(t, snowflake.ID(100), first.InvoiceID)
	assert.Equal(t, 73, first.DaysOverdue)
	assert.Equal(t, invoicedomain.InvoiceStatusOverdue, first.Status)
	assert.Equal(t, "CT-1", first.ContractCode)
	assert.Equal(t, "R101", first.RoomCode)
	assert.Equal(t, "Nguyen Van A", first.TenantName)
	assert.True(t, decimal.NewFromInt(2_000_000).Equal(first.RemainingAmount))

	assert.Equal(t, 13, report.Debts[1].DaysOverdue)
	assert.Equal(t, "Tran Thi B", report.Debts[1].TenantName)

	last := report.Debts[2]
	assert.Equal(t, 0, last.DaysOverdue)
	assert.Equal(t, invoicedomain.InvoiceStatusUnpaid, last.Status)
}
