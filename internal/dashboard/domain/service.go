package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/boardinghouse/pkg/date"
)

// Stats is the operator landing page summary as of AsOf.
type Stats struct {
	AsOf             date.Date       `json:"asOf"`
	TotalRooms       int64           `json:"totalRooms"`
	OccupiedRooms    int64           `json:"occupiedRooms"`
	AvailableRooms   int64           `json:"availableRooms"`
	MaintenanceRooms int64           `json:"maintenanceRooms"`
	ActiveContracts  int64           `json:"activeContracts"`
	MonthlyRevenue   decimal.Decimal `json:"monthlyRevenue"`
	UnpaidAmount     decimal.Decimal `json:"unpaidAmount"`
	OverdueInvoices  int64           `json:"overdueInvoices"`
}

type Service interface {
	Stats(ctx context.Context) (Stats, error)
}
