package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	dashboarddomain "github.com/smallbiznis/boardinghouse/internal/dashboard/domain"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/smallbiznis/boardinghouse/internal/observability/logger"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func NewService(p Params) dashboarddomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("dashboard.service"),
		clock: p.Clock,
	}
}

type statusCount struct {
	Status string
	Count  int64
}

type amounts struct {
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	DueDate     date.Date
}

// Stats runs the independent aggregates concurrently. Each goroutine writes
// only its own fields of stats.
func (s *Service) Stats(ctx context.Context) (dashboarddomain.Stats, error) {
	today := clock.Today(s.clock)
	stats := dashboarddomain.Stats{
		AsOf:           today,
		MonthlyRevenue: decimal.Zero,
		UnpaidAmount:   decimal.Zero,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var rows []statusCount
		err := s.db.WithContext(ctx).
			Raw(`SELECT status, COUNT(*) AS count FROM rooms GROUP BY status`).
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, row := range rows {
			stats.TotalRooms += row.Count
			switch roomdomain.Status(row.Status) {
			case roomdomain.StatusOccupied:
				stats.OccupiedRooms = row.Count
			case roomdomain.StatusAvailable:
				stats.AvailableRooms = row.Count
			case roomdomain.StatusMaintenance:
				stats.MaintenanceRooms = row.Count
			}
		}
		return nil
	})

	g.Go(func() error {
		return s.db.WithContext(ctx).
			Raw(`SELECT COUNT(*) FROM contracts WHERE status = ? AND end_date >= ?`, contractdomain.StatusActive, today).
			Scan(&stats.ActiveContracts).Error
	})

	g.Go(func() error {
		var rows []amounts
		period := today.Time()
		err := s.db.WithContext(ctx).
			Raw(`SELECT total_amount, paid_amount, due_date FROM invoices WHERE period_month = ? AND period_year = ?`,
				int(period.Month()), period.Year()).
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, row := range rows {
			stats.MonthlyRevenue = stats.MonthlyRevenue.Add(row.PaidAmount)
		}
		return nil
	})

	g.Go(func() error {
		var rows []amounts
		err := s.db.WithContext(ctx).
			Raw(`SELECT total_amount, paid_amount, due_date FROM invoices WHERE total_amount > paid_amount`).
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, row := range rows {
			stats.UnpaidAmount = stats.UnpaidAmount.Add(invoicedomain.Remaining(row.TotalAmount, row.PaidAmount))
			if invoicedomain.StatusAt(row.TotalAmount, row.PaidAmount, row.DueDate, today) == invoicedomain.InvoiceStatusOverdue {
				stats.OverdueInvoices++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.WithContext(ctx, s.log).Error("dashboard stats failed", zap.Error(err))
		return dashboarddomain.Stats{}, err
	}
	return stats, nil
}
