package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	"github.com/smallbiznis/boardinghouse/internal/config"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	detaildomain "github.com/smallbiznis/boardinghouse/internal/detail/domain"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/boardinghouse/internal/payment/domain"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	roomservicedomain "github.com/smallbiznis/boardinghouse/internal/roomservice/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Params struct {
	fx.In

	Log            *zap.Logger
	Clock          clock.Clock
	Billing        *config.BillingConfigHolder
	HouseSvc       boardinghousedomain.Service
	RoomSvc        roomdomain.Service
	RoomServiceSvc roomservicedomain.Service
	TenantSvc      tenantdomain.Service
	ContractSvc    contractdomain.Service
	InvoiceSvc     invoicedomain.Service
	PaymentSvc     paymentdomain.Service
}

// Service composes detail pages from the owning services. It holds no
// storage of its own.
type Service struct {
	log         *zap.Logger
	clock       clock.Clock
	billing     *config.BillingConfigHolder
	houses      boardinghousedomain.Service
	rooms       roomdomain.Service
	roomService roomservicedomain.Service
	tenants     tenantdomain.Service
	contracts   contractdomain.Service
	invoices    invoicedomain.Service
	payments    paymentdomain.Service
}

func NewService(p Params) detaildomain.Service {
	return &Service{
		log:         p.Log.Named("detail.service"),
		clock:       p.Clock,
		billing:     p.Billing,
		houses:      p.HouseSvc,
		rooms:       p.RoomSvc,
		roomService: p.RoomServiceSvc,
		tenants:     p.TenantSvc,
		contracts:   p.ContractSvc,
		invoices:    p.InvoiceSvc,
		payments:    p.PaymentSvc,
	}
}

func (s *Service) Contract(ctx context.Context, id string) (detaildomain.ContractDetail, error) {
	contract, err := s.contracts.Get(ctx, id)
	if err != nil {
		return detaildomain.ContractDetail{}, err
	}
	room, err := s.rooms.Get(ctx, contract.RoomID.String())
	if err != nil {
		return detaildomain.ContractDetail{}, err
	}
	house, err := s.houses.Get(ctx, room.BoardingHouseID.String())
	if err != nil {
		return detaildomain.ContractDetail{}, err
	}

	tenants := make([]tenantdomain.Tenant, 0, len(contract.CoTenantIDs)+1)
	for _, tenantID := range contract.TenantIDs() {
		tenant, err := s.tenants.Get(ctx, tenantID.String())
		if err != nil {
			return detaildomain.ContractDetail{}, err
		}
		tenants = append(tenants, tenant)
	}

	invoices, err := s.invoices.ListByContract(ctx, contract.ID.String())
	if err != nil {
		return detaildomain.ContractDetail{}, err
	}

	return detaildomain.ContractDetail{
		Contract:          contract,
		Room:              room,
		RoomCode:          room.Code,
		BoardingHouseName: house.Name,
		MainTenant:        tenants[0],
		Tenants:           tenants,
		Invoices:          nonNil(invoices),
		DaysRemaining:     contract.DaysRemaining(clock.Today(s.clock)),
	}, nil
}

func (s *Service) Room(ctx context.Context, id string) (detaildomain.RoomDetail, error) {
	room, err := s.rooms.Get(ctx, id)
	if err != nil {
		return detaildomain.RoomDetail{}, err
	}

	detail := detaildomain.RoomDetail{Room: room}
	var contracts []contractdomain.Contract

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		house, err := s.houses.Get(gctx, room.BoardingHouseID.String())
		detail.BoardingHouse = house
		return err
	})
	g.Go(func() error {
		services, err := s.roomService.ListByRoom(gctx, room.ID.String())
		detail.Services = services
		return err
	})
	g.Go(func() error {
		var err error
		contracts, err = s.contracts.List(gctx, contractdomain.ListRequest{RoomID: room.ID.String()})
		return err
	})
	if err := g.Wait(); err != nil {
		return detaildomain.RoomDetail{}, err
	}

	ids := make([]snowflake.ID, 0, len(contracts))
	for i := range contracts {
		ids = append(ids, contracts[i].ID)
		if detail.CurrentContract == nil && contracts[i].Status == contractdomain.StatusActive {
			detail.CurrentContract = &contracts[i]
		}
	}
	invoices, err := s.invoices.ListByContracts(ctx, ids)
	if err != nil {
		return detaildomain.RoomDetail{}, err
	}
	if limit := s.billing.Get().RecentInvoiceLimit; limit > 0 && len(invoices) > limit {
		invoices = invoices[:limit]
	}
	detail.RecentInvoices = nonNil(invoices)
	if detail.Services == nil {
		detail.Services = []roomservicedomain.View{}
	}
	return detail, nil
}

func (s *Service) Tenant(ctx context.Context, id string) (detaildomain.TenantDetail, error) {
	tenant, err := s.tenants.Get(ctx, id)
	if err != nil {
		return detaildomain.TenantDetail{}, err
	}
	contracts, err := s.contracts.ListByTenant(ctx, tenant.ID)
	if err != nil {
		return detaildomain.TenantDetail{}, err
	}
	ids := make([]snowflake.ID, 0, len(contracts))
	for _, c := range contracts {
		ids = append(ids, c.ID)
	}
	invoices, err := s.invoices.ListByContracts(ctx, ids)
	if err != nil {
		return detaildomain.TenantDetail{}, err
	}

	unpaid := 0
	for _, inv := range invoices {
		if inv.Status != invoicedomain.InvoiceStatusPaid {
			unpaid++
		}
	}
	if contracts == nil {
		contracts = []contractdomain.Contract{}
	}
	return detaildomain.TenantDetail{
		Tenant:         tenant,
		Contracts:      contracts,
		Invoices:       nonNil(invoices),
		TotalInvoices:  len(invoices),
		UnpaidInvoices: unpaid,
	}, nil
}

func (s *Service) Invoice(ctx context.Context, id string) (detaildomain.InvoiceDetail, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return detaildomain.InvoiceDetail{}, err
	}
	contract, err := s.contracts.Get(ctx, invoice.ContractID.String())
	if err != nil {
		return detaildomain.InvoiceDetail{}, err
	}
	room, err := s.rooms.Get(ctx, contract.RoomID.String())
	if err != nil {
		return detaildomain.InvoiceDetail{}, err
	}
	house, err := s.houses.Get(ctx, room.BoardingHouseID.String())
	if err != nil {
		return detaildomain.InvoiceDetail{}, err
	}
	tenant, err := s.tenants.Get(ctx, contract.TenantID.String())
	if err != nil {
		return detaildomain.InvoiceDetail{}, err
	}
	payments, err := s.payments.ListByInvoice(ctx, invoice.ID.String())
	if err != nil {
		return detaildomain.InvoiceDetail{}, err
	}
	if payments == nil {
		payments = []paymentdomain.Payment{}
	}

	return detaildomain.InvoiceDetail{
		Invoice:           invoice,
		ContractCode:      contract.Code,
		RoomID:            room.ID,
		RoomCode:          room.Code,
		BoardingHouseName: house.Name,
		MainTenantName:    tenant.FullName,
		MainTenantPhone:   tenant.Phone,
		Payments:          payments,
	}, nil
}

func nonNil(invoices []invoicedomain.Invoice) []invoicedomain.Invoice {
	if invoices == nil {
		return []invoicedomain.Invoice{}
	}
	return invoices
}
