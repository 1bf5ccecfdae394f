// Package domain holds the composed read models shown on detail pages.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/boardinghouse/internal/payment/domain"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	roomservicedomain "github.com/smallbiznis/boardinghouse/internal/roomservice/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
)

type ContractDetail struct {
	contractdomain.Contract
	Room              roomdomain.Room         `json:"room"`
	RoomCode          string                  `json:"roomCode"`
	BoardingHouseName string                  `json:"boardingHouseName"`
	MainTenant        tenantdomain.Tenant     `json:"mainTenant"`
	Tenants           []tenantdomain.Tenant   `json:"tenants"`
	Invoices          []invoicedomain.Invoice `json:"invoices"`
	DaysRemaining     int                     `json:"daysRemaining"`
}

type RoomDetail struct {
	roomdomain.Room
	BoardingHouse   boardinghousedomain.BoardingHouse `json:"boardingHouse"`
	Services        []roomservicedomain.View          `json:"services"`
	CurrentContract *contractdomain.Contract          `json:"currentContract"`
	RecentInvoices  []invoicedomain.Invoice           `json:"recentInvoices"`
}

type TenantDetail struct {
	tenantdomain.Tenant
	Contracts      []contractdomain.Contract `json:"contracts"`
	Invoices       []invoicedomain.Invoice   `json:"invoices"`
	TotalInvoices  int                       `json:"totalInvoices"`
	UnpaidInvoices int                       `json:"unpaidInvoices"`
}

type InvoiceDetail struct {
	invoicedomain.Invoice
	ContractCode      string                  `json:"contractCode"`
	RoomID            snowflake.ID            `json:"roomId"`
	RoomCode          string                  `json:"roomCode"`
	BoardingHouseName string                  `json:"boardingHouseName"`
	MainTenantName    string                  `json:"mainTenantName"`
	MainTenantPhone   string                  `json:"mainTenantPhone"`
	Payments          []paymentdomain.Payment `json:"payments"`
}

type Service interface {
	Contract(ctx context.Context, id string) (ContractDetail, error)
	Room(ctx context.Context, id string) (RoomDetail, error)
	Tenant(ctx context.Context, id string) (TenantDetail, error)
	Invoice(ctx context.Context, id string) (InvoiceDetail, error)
}
