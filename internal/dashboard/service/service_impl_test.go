package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStats(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&roomdomain.Room{}, &contractdomain.Contract{}, &invoicedomain.Invoice{}))

	clk := clock.NewFakeClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	now := clk.Now()

	rooms := []struct {
		id     snowflake.ID
		code   string
		status roomdomain.Status
	}{
		{10, "R101", roomdomain.StatusOccupied},
		{11, "R102", roomdomain.StatusOccupied},
		{12, "R201", roomdomain.StatusAvailable},
		{13, "R202", roomdomain.StatusMaintenance},
	}
	for _, r := range rooms {
		require.NoError(t, conn.Create(&roomdomain.Room{ID: r.id, BoardingHouseID: 1, Code: r.code, BaseRent: decimal.NewFromInt(3_000_000), Status: r.status, CreatedAt: now, UpdatedAt: now}).Error)
	}

	contracts := []contractdomain.Contract{
		{ID: 30, Code: "CT-1", RoomID: 10, EndDate: date.New(2024, 12, 31), StoredStatus: contractdomain.StatusActive},
		{ID: 31, Code: "CT-2", RoomID: 11, EndDate: date.New(2024, 3, 1), StoredStatus: contractdomain.StatusActive},
		{ID: 32, Code: "CT-3", RoomID: 12, EndDate: date.New(2024, 12, 31), StoredStatus: contractdomain.StatusDraft},
	}
	for _, c := range contracts {
		c.TenantID, c.StartDate, c.MonthlyRent, c.Deposit = 20, date.New(2024, 1, 1), decimal.NewFromInt(3_000_000), decimal.Zero
		c.BillingCycle, c.CreatedAt, c.UpdatedAt = contractdomain.BillingCycleMonthly, now, now
		require.NoError(t, conn.Create(&c).Error)
	}

	invoices := []struct {
		id          snowflake.ID
		month       int
		due         date.Date
		total, paid int64
	}{
		{100, 2, date.New(2024, 2, 29), 3_000_000, 1_000_000},
		{101, 3, date.New(2024, 3, 31), 3_175_000, 1_175_000},
		{102, 3, date.New(2024, 3, 31), 3_200_000, 3_200_000},
	}
	for _, inv := range invoices {
		total, paid := decimal.NewFromInt(inv.total), decimal.NewFromInt(inv.paid)
		require.NoError(t, conn.Create(&invoicedomain.Invoice{
			ID:               inv.id,
			Code:             "INV-" + inv.id.String(),
			ContractID:       inv.id,
			PeriodMonth:      inv.month,
			PeriodYear:       2024,
			DueDate:          inv.due,
			Currency:         "VND",
			TotalAmount:      total,
			PaidAmount:       paid,
			SettlementStatus: invoicedomain.Settle(total, paid),
			CreatedAt:        now,
			UpdatedAt:        now,
		}).Error)
	}

	svc := NewService(Params{DB: conn, Log: zap.NewNop(), Clock: clk})
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, date.New(2024, 3, 15), stats.AsOf)
	assert.EqualValues(t, 4, stats.TotalRooms)
	assert.EqualValues(t, 2, stats.OccupiedRooms)
	assert.EqualValues(t, 1, stats.AvailableRooms)
	assert.EqualValues(t, 1, stats.MaintenanceRooms)
	// CT-2 ended on 2024-03-01 and reads as EXPIRED.
	assert.EqualValues(t, 1, stats.ActiveContracts)
	assert.True(t, decimal.NewFromInt(4_375_000).Equal(stats.MonthlyRevenue), stats.MonthlyRevenue.String())
	assert.True(t, decimal.NewFromInt(4_000_000).Equal(stats.UnpaidAmount), stats.UnpaidAmount.String())
	assert.EqualValues(t, 1, stats.OverdueInvoices)
}

func TestStatsEmpty(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&roomdomain.Room{}, &contractdomain.Contract{}, &invoicedomain.Invoice{}))

	svc := NewService(Params{DB: conn, Log: zap.NewNop(), Clock: clock.NewFakeClock(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))})
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRooms)
	assert.True(t, stats.MonthlyRevenue.IsZero())
	assert.True(t, stats.UnpaidAmount.IsZero())
}
