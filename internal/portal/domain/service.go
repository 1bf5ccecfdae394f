// Package domain scopes tenant self-service reads to the caller's own records.
package domain

import (
	"context"

	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/boardinghouse/internal/payment/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
)

// Service resolves the tenant linked to the request principal. Every method
// fails when the context carries no principal.
type Service interface {
	Me(ctx context.Context) (tenantdomain.Tenant, error)
	Contracts(ctx context.Context) ([]contractdomain.Contract, error)
	Invoices(ctx context.Context) ([]invoicedomain.Invoice, error)
	// Invoice returns one of the caller's invoices with its items. Invoices
	// owned by other tenants are reported as not found.
	Invoice(ctx context.Context, id string) (invoicedomain.Invoice, error)
	Payments(ctx context.Context) ([]paymentdomain.Payment, error)
}

var (
	ErrNoPrincipal     = ierr.NewError("portal_no_principal").WithHint("Authentication required").Mark(ierr.ErrUnauthenticated)
	ErrNoTenant        = ierr.NewError("portal_no_tenant").WithHint("No tenant profile is linked to this account").Mark(ierr.ErrNotFound)
	ErrInvoiceNotFound = ierr.NewError("invoice_not_found").WithHint("Invoice not found").Mark(ierr.ErrNotFound)
)
