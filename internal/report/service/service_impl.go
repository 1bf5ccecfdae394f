package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/smallbiznis/boardinghouse/internal/observability/logger"
	reportdomain "github.com/smallbiznis/boardinghouse/internal/report/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"github.com/smallbiznis/boardinghouse/pkg/validator"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Clock        clock.Clock
	ContractRepo contractdomain.Repository
	TenantRepo   tenantdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	clock        clock.Clock
	contractRepo contractdomain.Repository
	tenantRepo   tenantdomain.Repository
}

func NewService(p Params) reportdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("report.service"),
		clock:        p.Clock,
		contractRepo: p.ContractRepo,
		tenantRepo:   p.TenantRepo,
	}
}

// invoiceFact is one invoice joined with the names reports print.
type invoiceFact struct {
	ID                snowflake.ID
	Code              string
	ContractID        snowflake.ID
	ContractCode      string
	RoomID            snowflake.ID
	RoomCode          string
	BoardingHouseID   snowflake.ID
	BoardingHouseName string
	TenantName        string
	PeriodMonth       int
	PeriodYear        int
	DueDate           date.Date
	TotalAmount       decimal.Decimal
	PaidAmount        decimal.Decimal
}

func (f invoiceFact) invoice() invoicedomain.Invoice {
	return invoicedomain.Invoice{
		ID:          f.ID,
		TotalAmount: f.TotalAmount,
		PaidAmount:  f.PaidAmount,
		DueDate:     f.DueDate,
	}
}

func (f invoiceFact) paid() bool {
	return invoicedomain.Settle(f.TotalAmount, f.PaidAmount) == invoicedomain.InvoiceStatusPaid
}

const invoiceFactsQuery = `
SELECT i.id, i.code, i.contract_id, c.code AS contract_code,
       c.room_id, r.code AS room_code,
       r.boarding_house_id, h.name AS boarding_house_name,
       COALESCE(t.full_name, '') AS tenant_name,
       i.period_month, i.period_year, i.due_date,
       i.total_amount, i.paid_amount
FROM invoices i
JOIN contracts c ON c.id = i.contract_id
JOIN rooms r ON r.id = c.room_id
JOIN boarding_houses h ON h.id = r.boarding_house_id
LEFT JOIN tenants t ON t.id = c.tenant_id
`

func (s *Service) listFacts(ctx context.Context, where string, args ...any) ([]invoiceFact, error) {
	query := invoiceFactsQuery
	if strings.TrimSpace(where) != "" {
		query += "WHERE " + where + "\n"
	}
	query += "ORDER BY i.period_year, i.period_month, i.id"

	var rows []invoiceFact
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type totals struct {
	revenue   decimal.Decimal
	paid      decimal.Decimal
	count     int
	paidCount int
}

func sumFacts(facts []invoiceFact) totals {
	return lo.Reduce(facts, func(acc totals, f invoiceFact, _ int) totals {
		acc.revenue = acc.revenue.Add(f.TotalAmount)
		acc.paid = acc.paid.Add(f.PaidAmount)
		acc.count++
		if f.paid() {
			acc.paidCount++
		}
		return acc
	}, totals{revenue: decimal.Zero, paid: decimal.Zero})
}

func (s *Service) RevenueByMonth(ctx context.Context, req reportdomain.RevenueByMonthRequest) ([]reportdomain.MonthRevenue, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}
	year := req.Year
	if year == 0 {
		year = s.clock.Now().UTC().Year()
	}

	facts, err := s.listFacts(ctx, "i.period_year = ?", year)
	if err != nil {
		return nil, err
	}
	byMonth := lo.GroupBy(facts, func(f invoiceFact) int { return f.PeriodMonth })

	return lo.Map(lo.RangeFrom(1, 12), func(month int, _ int) reportdomain.MonthRevenue {
		sum := sumFacts(byMonth[month])
		return reportdomain.MonthRevenue{
			Month:            month,
			Year:             year,
			TotalRevenue:     sum.revenue,
			PaidRevenue:      sum.paid,
			InvoiceCount:     sum.count,
			PaidInvoiceCount: sum.paidCount,
		}
	}), nil
}

func (s *Service) RevenueByBoardingHouse(ctx context.Context, req reportdomain.RevenueByBoardingHouseRequest) ([]reportdomain.HouseRevenue, error) {
	if strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return nil, reportdomain.ErrMissingRange
	}
	start, err := date.Parse(req.StartDate)
	if err != nil {
		return nil, reportdomain.ErrInvalidDate
	}
	end, err := date.Parse(req.EndDate)
	if err != nil {
		return nil, reportdomain.ErrInvalidDate
	}
	if end.Before(start) {
		return nil, reportdomain.ErrInvalidRange
	}

	// Coarse month window in SQL, exact period-start bounds below.
	startKey := start.Time().Year()*100 + int(start.Time().Month())
	endKey := end.Time().Year()*100 + int(end.Time().Month())
	facts, err := s.listFacts(ctx, "(i.period_year * 100 + i.period_month) BETWEEN ? AND ?", startKey, endKey)
	if err != nil {
		return nil, err
	}
	facts = lo.Filter(facts, func(f invoiceFact, _ int) bool {
		periodStart := date.New(f.PeriodYear, time.Month(f.PeriodMonth), 1)
		return !periodStart.Before(start) && !periodStart.After(end)
	})

	byHouse := lo.GroupBy(facts, func(f invoiceFact) snowflake.ID { return f.BoardingHouseID })
	out := make([]reportdomain.HouseRevenue, 0, len(byHouse))
	for houseID, houseFacts := range byHouse {
		sum := sumFacts(houseFacts)
		out = append(out, reportdomain.HouseRevenue{
			BoardingHouseID:   houseID,
			BoardingHouseName: houseFacts[0].BoardingHouseName,
			TotalRevenue:      sum.revenue,
			PaidRevenue:       sum.paid,
			InvoiceCount:      sum.count,
			PaidInvoiceCount:  sum.paidCount,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BoardingHouseName != out[j].BoardingHouseName {
			return out[i].BoardingHouseName < out[j].BoardingHouseName
		}
		return out[i].BoardingHouseID < out[j].BoardingHouseID
	})
	return out, nil
}

func (s *Service) TenantsCurrentlyRenting(ctx context.Context) ([]tenantdomain.Tenant, error) {
	today := clock.Today(s.clock)
	contracts, err := s.contractRepo.List(ctx, s.db, contractdomain.ListFilter{
		Statuses: []contractdomain.Status{contractdomain.StatusActive},
	})
	if err != nil {
		return nil, err
	}
	contracts = lo.Filter(contracts, func(c contractdomain.Contract, _ int) bool {
		return c.EffectiveStatus(today) == contractdomain.StatusActive
	})
	if len(contracts) == 0 {
		return []tenantdomain.Tenant{}, nil
	}

	ids := lo.Uniq(lo.FlatMap(contracts, func(c contractdomain.Contract, _ int) []snowflake.ID {
		return c.TenantIDs()
	}))
	tenants, err := s.tenantRepo.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	tenants = lo.Filter(tenants, func(t tenantdomain.Tenant, _ int) bool {
		return t.Status == tenantdomain.StatusActive
	})
	sort.Slice(tenants, func(i, j int) bool {
		if tenants[i].FullName != tenants[j].FullName {
			return tenants[i].FullName < tenants[j].FullName
		}
		return tenants[i].ID < tenants[j].ID
	})
	return tenants, nil
}

func (s *Service) OutstandingDebts(ctx context.Context) (reportdomain.OutstandingDebts, error) {
	today := clock.Today(s.clock)
	facts, err := s.listFacts(ctx, "i.total_amount > i.paid_amount")
	if err != nil {
		return reportdomain.OutstandingDebts{}, err
	}

	debts := make([]reportdomain.OutstandingDebt, 0, len(facts))
	for _, f := range facts {
		inv := f.invoice()
		inv.Resolve(today)
		if !inv.RemainingAmount.IsPositive() {
			continue
		}
		debts = append(debts, reportdomain.OutstandingDebt{
			InvoiceID:       f.ID,
			InvoiceCode:     f.Code,
			ContractID:      f.ContractID,
			ContractCode:    f.ContractCode,
			RoomID:          f.RoomID,
			RoomCode:        f.RoomCode,
			TenantName:      f.TenantName,
			PeriodMonth:     f.PeriodMonth,
			PeriodYear:      f.PeriodYear,
			TotalAmount:     f.TotalAmount,
			PaidAmount:      f.PaidAmount,
			RemainingAmount: inv.RemainingAmount,
			Status:          inv.Status,
			DueDate:         f.DueDate,
			DaysOverdue:     inv.DaysOverdue(today),
		})
	}
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].DaysOverdue > debts[j].DaysOverdue
	})

	result := reportdomain.OutstandingDebts{
		TotalOutstanding: lo.Reduce(debts, func(acc decimal.Decimal, d reportdomain.OutstandingDebt, _ int) decimal.Decimal {
			return acc.Add(d.RemainingAmount)
		}, decimal.Zero),
		InvoiceCount: len(debts),
		OverdueCount: lo.CountBy(debts, func(d reportdomain.OutstandingDebt) bool { return d.DaysOverdue > 0 }),
		Debts:        debts,
	}
	logger.WithContext(ctx, s.log).Debug("outstanding debts computed",
		zap.Int("invoice_count", result.InvoiceCount),
		zap.Int("overdue_count", result.OverdueCount),
	)
	return result, nil
}
