package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/samber/lo"
	"github.com/smallbiznis/boardinghouse/internal/auth"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/smallbiznis/boardinghouse/internal/observability/logger"
	paymentdomain "github.com/smallbiznis/boardinghouse/internal/payment/domain"
	portaldomain "github.com/smallbiznis/boardinghouse/internal/portal/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log         *zap.Logger
	TenantSvc   tenantdomain.Service
	ContractSvc contractdomain.Service
	InvoiceSvc  invoicedomain.Service
	PaymentSvc  paymentdomain.Service
}

type Service struct {
	log       *zap.Logger
	tenants   tenantdomain.Service
	contracts contractdomain.Service
	invoices  invoicedomain.Service
	payments  paymentdomain.Service
}

func NewService(p Params) portaldomain.Service {
	return &Service{
		log:       p.Log.Named("portal.service"),
		tenants:   p.TenantSvc,
		contracts: p.ContractSvc,
		invoices:  p.InvoiceSvc,
		payments:  p.PaymentSvc,
	}
}

func (s *Service) Me(ctx context.Context) (tenantdomain.Tenant, error) {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return tenantdomain.Tenant{}, portaldomain.ErrNoPrincipal
	}
	tenant, err := s.tenants.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if ierr.IsNotFound(err) {
			logger.WithContext(ctx, s.log).Debug("portal caller has no tenant profile",
				zap.String("user_id", principal.UserID),
			)
			return tenantdomain.Tenant{}, portaldomain.ErrNoTenant
		}
		return tenantdomain.Tenant{}, err
	}
	return tenant, nil
}

func (s *Service) Contracts(ctx context.Context) ([]contractdomain.Contract, error) {
	tenant, err := s.Me(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := s.contracts.ListByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	if contracts == nil {
		contracts = []contractdomain.Contract{}
	}
	return contracts, nil
}

func (s *Service) Invoices(ctx context.Context) ([]invoicedomain.Invoice, error) {
	contracts, err := s.Contracts(ctx)
	if err != nil {
		return nil, err
	}
	return s.invoices.ListByContracts(ctx, contractIDs(contracts))
}

func (s *Service) Invoice(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	contracts, err := s.Contracts(ctx)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		if ierr.IsNotFound(err) || ierr.IsInvalidInput(err) {
			return invoicedomain.Invoice{}, portaldomain.ErrInvoiceNotFound
		}
		return invoicedomain.Invoice{}, err
	}
	if !lo.Contains(contractIDs(contracts), invoice.ContractID) {
		logger.WithContext(ctx, s.log).Warn("portal invoice access outside tenant scope",
			zap.String("invoice_id", invoice.ID.String()),
			zap.String("actor", auth.ActorID(ctx)),
		)
		return invoicedomain.Invoice{}, portaldomain.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *Service) Payments(ctx context.Context) ([]paymentdomain.Payment, error) {
	invoices, err := s.Invoices(ctx)
	if err != nil {
		return nil, err
	}
	ids := lo.Map(invoices, func(inv invoicedomain.Invoice, _ int) snowflake.ID { return inv.ID })
	if len(ids) == 0 {
		return []paymentdomain.Payment{}, nil
	}
	return s.payments.ListByInvoices(ctx, ids)
}

func contractIDs(contracts []contractdomain.Contract) []snowflake.ID {
	return lo.Map(contracts, func(c contractdomain.Contract, _ int) snowflake.ID { return c.ID })
}
