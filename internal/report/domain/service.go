package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"github.com/smallbiznis/boardinghouse/pkg/date"
)

type RevenueByMonthRequest struct {
	Year int `form:"year" validate:"omitempty,gte=2000,lte=9999"`
}

// MonthRevenue aggregates the invoices billed for one period month.
type MonthRevenue struct {
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	PaidRevenue      decimal.Decimal `json:"paidRevenue"`
	InvoiceCount     int             `json:"invoiceCount"`
	PaidInvoiceCount int             `json:"paidInvoiceCount"`
}

type RevenueByBoardingHouseRequest struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

type HouseRevenue struct {
	BoardingHouseID   snowflake.ID    `json:"boardingHouseId"`
	BoardingHouseName string          `json:"boardingHouseName"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	PaidRevenue       decimal.Decimal `json:"paidRevenue"`
	InvoiceCount      int             `json:"invoiceCount"`
	PaidInvoiceCount  int             `json:"paidInvoiceCount"`
}

type OutstandingDebt struct {
	InvoiceID       snowflake.ID                `json:"invoiceId"`
	InvoiceCode     string                      `json:"invoiceCode"`
	ContractID      snowflake.ID                `json:"contractId"`
	ContractCode    string                      `json:"contractCode"`
	RoomID          snowflake.ID                `json:"roomId"`
	RoomCode        string                      `json:"roomCode"`
	TenantName      string                      `json:"tenantName"`
	PeriodMonth     int                         `json:"periodMonth"`
	PeriodYear      int                         `json:"periodYear"`
	TotalAmount     decimal.Decimal             `json:"totalAmount"`
	PaidAmount      decimal.Decimal             `json:"paidAmount"`
	RemainingAmount decimal.Decimal             `json:"remainingAmount"`
	Status          invoicedomain.InvoiceStatus `json:"status"`
	DueDate         date.Date                   `json:"dueDate"`
	DaysOverdue     int                         `json:"daysOverdue"`
}

type OutstandingDebts struct {
	TotalOutstanding decimal.Decimal   `json:"totalOutstanding"`
	InvoiceCount     int               `json:"invoiceCount"`
	OverdueCount     int               `json:"overdueCount"`
	Debts            []OutstandingDebt `json:"debts"`
}

type Service interface {
	// RevenueByMonth always returns twelve entries, one per month of year.
	RevenueByMonth(ctx context.Context, req RevenueByMonthRequest) ([]MonthRevenue, error)
	RevenueByBoardingHouse(ctx context.Context, req RevenueByBoardingHouseRequest) ([]HouseRevenue, error)
	// TenantsCurrentlyRenting lists distinct ACTIVE tenants on contracts active today.
	TenantsCurrentlyRenting(ctx context.Context) ([]tenantdomain.Tenant, error)
	// OutstandingDebts lists unsettled invoices, most overdue first.
	OutstandingDebts(ctx context.Context) (OutstandingDebts, error)
}

var (
	ErrMissingRange = ierr.NewError("missing_date_range").WithHint("startDate and endDate are required").Mark(ierr.ErrMissingInput)
	ErrInvalidDate  = ierr.NewError("invalid_date").WithHint("Dates must be formatted YYYY-MM-DD").Mark(ierr.ErrInvalidInput)
	ErrInvalidRange = ierr.NewError("invalid_date_range").WithHint("startDate must not be after endDate").Mark(ierr.ErrInvalidInput)
)
