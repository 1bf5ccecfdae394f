package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/auth"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/smallbiznis/boardinghouse/internal/mocks"
	paymentdomain "github.com/smallbiznis/boardinghouse/internal/payment/domain"
	portaldomain "github.com/smallbiznis/boardinghouse/internal/portal/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc       portaldomain.Service
	tenants   *mocks.TenantService
	contracts *mocks.ContractService
	invoices  *mocks.InvoiceService
	payments  *mocks.PaymentService
}

func newFixture() fixture {
	f := fixture{
		tenants:   &mocks.TenantService{},
		contracts: &mocks.ContractService{},
		invoices:  &mocks.InvoiceService{},
		payments:  &mocks.PaymentService{},
	}
	f.svc = NewService(Params{
		Log:         zap.NewNop(),
		TenantSvc:   f.tenants,
		ContractSvc: f.contracts,
		InvoiceSvc:  f.invoices,
		PaymentSvc:  f.payments,
	})
	return f
}

func tenantCtx() context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{UserID: "u-20", Roles: []string{auth.RoleTenant}})
}

func (f fixture) linked() {
	f.tenants.On("GetByUserID", mock.Anything, "u-20").Return(tenantdomain.Tenant{ID: 20, FullName: "Nguyen Van A"}, nil)
	f.contracts.On("ListByTenant", mock.Anything, snowflake.ID(20)).Return([]contractdomain.Contract{{ID: 30, Code: "CT-2024-001"}}, nil)
}

func TestMeRequiresPrincipal(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Me(context.Background())
	assert.True(t, ierr.IsUnauthenticated(err))
}

func TestMeWithoutTenantProfile(t *testing.T) {
	f := newFixture()
	f.tenants.On("GetByUserID", mock.Anything, "u-20").Return(tenantdomain.Tenant{}, tenantdomain.ErrNotFound)

	_, err := f.svc.Me(tenantCtx())
	assert.ErrorIs(t, err, portaldomain.ErrNoTenant)
}

func TestContractsAndInvoices(t *testing.T) {
	f := newFixture()
	f.linked()
	f.invoices.On("ListByContracts", mock.Anything, []snowflake.ID{30}).Return([]invoicedomain.Invoice{{ID: 100, ContractID: 30}}, nil)
	ctx := tenantCtx()

	contracts, err := f.svc.Contracts(ctx)
	require.NoError(t, err)
	assert.Len(t, contracts, 1)

	invoices, err := f.svc.Invoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, snowflake.ID(100), invoices[0].ID)
}

func TestInvoiceScopedToTenant(t *testing.T) {
	f := newFixture()
	f.linked()
	f.invoices.On("GetByID", mock.Anything, "100").Return(invoicedomain.Invoice{ID: 100, ContractID: 30}, nil)
	f.invoices.On("GetByID", mock.Anything, "200").Return(invoicedomain.Invoice{ID: 200, ContractID: 31}, nil)
	f.invoices.On("GetByID", mock.Anything, "bogus").Return(invoicedomain.Invoice{}, invoicedomain.ErrInvalidInvoiceID)
	ctx := tenantCtx()

	inv, err := f.svc.Invoice(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(100), inv.ID)

	_, err = f.svc.Invoice(ctx, "200")
	assert.ErrorIs(t, err, portaldomain.ErrInvoiceNotFound)

	_, err = f.svc.Invoice(ctx, "bogus")
	assert.ErrorIs(t, err, portaldomain.ErrInvoiceNotFound)
}

func TestPayments(t *testing.T) {
	f := newFixture()
	f.linked()
	f.invoices.On("ListByContracts", mock.Anything, []snowflake.ID{30}).Return([]invoicedomain.Invoice{{ID: 100}, {ID: 101}}, nil)
	f.payments.On("ListByInvoices", mock.Anything, []snowflake.ID{100, 101}).Return([]paymentdomain.Payment{{ID: 700, InvoiceID: 100}}, nil)

	payments, err := f.svc.Payments(tenantCtx())
	require.NoError(t, err)
	assert.Len(t, payments, 1)
	f.payments.AssertExpectations(t)
}

func TestPaymentsWithoutInvoices(t *testing.T) {
	f := newFixture()
	f.linked()
	f.invoices.On("ListByContracts", mock.Anything, []snowflake.ID{30}).Return([]invoicedomain.Invoice{}, nil)

	payments, err := f.svc.Payments(tenantCtx())
	require.NoError(t, err)
	assert.Empty(t, payments)
	f.payments.AssertNotCalled(t, "ListByInvoices", mock.Anything, mock.Anything)
}
