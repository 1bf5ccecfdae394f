package mocks

import (
	"context"

	auditdomain "github.com/smallbiznis/boardinghouse/internal/audit/domain"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	dashboarddomain "github.com/smallbiznis/boardinghouse/internal/dashboard/domain"
	detaildomain "github.com/smallbiznis/boardinghouse/internal/detail/domain"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/boardinghouse/internal/payment/domain"
	reportdomain "github.com/smallbiznis/boardinghouse/internal/report/domain"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type ServiceTypeService struct{ mock.Mock }

func (m *ServiceTypeService) Create(ctx context.Context, req servicetypedomain.CreateRequest) (servicetypedomain.ServiceType, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(servicetypedomain.ServiceType), args.Error(1)
}

func (m *ServiceTypeService) Update(ctx context.Context, id string, req servicetypedomain.UpdateRequest) (servicetypedomain.ServiceType, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(servicetypedomain.ServiceType), args.Error(1)
}

func (m *ServiceTypeService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ServiceTypeService) Get(ctx context.Context, id string) (servicetypedomain.ServiceType, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(servicetypedomain.ServiceType), args.Error(1)
}

func (m *ServiceTypeService) List(ctx context.Context, filter servicetypedomain.ListFilter) ([]servicetypedomain.ServiceType, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]servicetypedomain.ServiceType), args.Error(1)
}

type ReportService struct{ mock.Mock }

func (m *ReportService) RevenueByMonth(ctx context.Context, req reportdomain.RevenueByMonthRequest) ([]reportdomain.MonthRevenue, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]reportdomain.MonthRevenue), args.Error(1)
}

func (m *ReportService) RevenueByBoardingHouse(ctx context.Context, req reportdomain.RevenueByBoardingHouseRequest) ([]reportdomain.HouseRevenue, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]reportdomain.HouseRevenue), args.Error(1)
}

func (m *ReportService) TenantsCurrentlyRenting(ctx context.Context) ([]tenantdomain.Tenant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tenantdomain.Tenant), args.Error(1)
}

func (m *ReportService) OutstandingDebts(ctx context.Context) (reportdomain.OutstandingDebts, error) {
	args := m.Called(ctx)
	return args.Get(0).(reportdomain.OutstandingDebts), args.Error(1)
}

type DashboardService struct{ mock.Mock }

func (m *DashboardService) Stats(ctx context.Context) (dashboarddomain.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(dashboarddomain.Stats), args.Error(1)
}

type DetailService struct{ mock.Mock }

func (m *DetailService) Contract(ctx context.Context, id string) (detaildomain.ContractDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(detaildomain.ContractDetail), args.Error(1)
}

func (m *DetailService) Room(ctx context.Context, id string) (detaildomain.RoomDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(detaildomain.RoomDetail), args.Error(1)
}

func (m *DetailService) Tenant(ctx context.Context, id string) (detaildomain.TenantDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(detaildomain.TenantDetail), args.Error(1)
}

func (m *DetailService) Invoice(ctx context.Context, id string) (detaildomain.InvoiceDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(detaildomain.InvoiceDetail), args.Error(1)
}

type PortalService struct{ mock.Mock }

func (m *PortalService) Me(ctx context.Context) (tenantdomain.Tenant, error) {
	args := m.Called(ctx)
	return args.Get(0).(tenantdomain.Tenant), args.Error(1)
}

func (m *PortalService) Contracts(ctx context.Context) ([]contractdomain.Contract, error) {
	args := m.Called(ctx)
	return args.Get(0).([]contractdomain.Contract), args.Error(1)
}

func (m *PortalService) Invoices(ctx context.Context) ([]invoicedomain.Invoice, error) {
	args := m.Called(ctx)
	return args.Get(0).([]invoicedomain.Invoice), args.Error(1)
}

func (m *PortalService) Invoice(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(invoicedomain.Invoice), args.Error(1)
}

func (m *PortalService) Payments(ctx context.Context) ([]paymentdomain.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]paymentdomain.Payment), args.Error(1)
}

type AuditService struct{ mock.Mock }

func (m *AuditService) Record(ctx context.Context, tx *gorm.DB, entry auditdomain.Entry) error {
	return m.Called(ctx, tx, entry).Error(0)
}

func (m *AuditService) List(ctx context.Context, req auditdomain.ListAuditLogRequest) (auditdomain.ListAuditLogResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(auditdomain.ListAuditLogResponse), args.Error(1)
}
