// Package mocks provides testify doubles for the domain services.
package mocks

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
	"github.com/stretchr/testify/mock"
)

type BoardingHouseService struct{ mock.Mock }

func (m *BoardingHouseService) Create(ctx context.Context, req boardinghousedomain.CreateRequest) (boardinghousedomain.BoardingHouse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(boardinghousedomain.BoardingHouse), args.Error(1)
}

func (m *BoardingHouseService) Update(ctx context.Context, id string, req boardinghousedomain.UpdateRequest) (boardinghousedomain.BoardingHouse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(boardinghousedomain.BoardingHouse), args.Error(1)
}

func (m *BoardingHouseService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *BoardingHouseService) Get(ctx context.Context, id string) (boardinghousedomain.BoardingHouse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(boardinghousedomain.BoardingHouse), args.Error(1)
}

func (m *BoardingHouseService) List(ctx context.Context, req boardinghousedomain.ListRequest) ([]boardinghousedomain.BoardingHouse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]boardinghousedomain.BoardingHouse), args.Error(1)
}

type RoomService struct{ mock.Mock }

func (m *RoomService) Create(ctx context.Context, req roomdomain.CreateRequest) (roomdomain.Room, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(roomdomain.Room), args.Error(1)
}

func (m *RoomService) Update(ctx context.Context, id string, req roomdomain.UpdateRequest) (roomdomain.Room, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(roomdomain.Room), args.Error(1)
}

func (m *RoomService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RoomService) Get(ctx context.Context, id string) (roomdomain.Room, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(roomdomain.Room), args.Error(1)
}

func (m *RoomService) List(ctx context.Context, req roomdomain.ListRequest) ([]roomdomain.Room, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]roomdomain.Room), args.Error(1)
}

type RoomServiceService struct{ mock.Mock }

func (m *RoomServiceService) Create(ctx context.Context, req roomservicedomain.CreateRequest) (roomservicedomain.View, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(roomservicedomain.View), args.Error(1)
}

func (m *RoomServiceService) Update(ctx context.Context, id string, req roomservicedomain.UpdateRequest) (roomservicedomain.View, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(roomservicedomain.View), args.Error(1)
}

func (m *RoomServiceService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RoomServiceService) ListByRoom(ctx context.Context, roomID string) ([]roomservicedomain.View, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).([]roomservicedomain.View), args.Error(1)
}

type TenantService struct{ mock.Mock }

func (m *TenantService) Create(ctx context.Context, req tenantdomain.CreateRequest) (tenantdomain.Tenant, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(tenantdomain.Tenant), args.Error(1)
}

func (m *TenantService) Update(ctx context.Context, id string, req tenantdomain.UpdateRequest) (tenantdomain.Tenant, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(tenantdomain.Tenant), args.Error(1)
}

func (m *TenantService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TenantService) Get(ctx context.Context, id string) (tenantdomain.Tenant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(tenantdomain.Tenant), args.Error(1)
}

func (m *TenantService) GetByUserID(ctx context.Context, userID string) (tenantdomain.Tenant, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(tenantdomain.Tenant), args.Error(1)
}

func (m *TenantService) List(ctx context.Context, req tenantdomain.ListRequest) ([]tenantdomain.Tenant, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]tenantdomain.Tenant), args.Error(1)
}

type ContractService struct{ mock.Mock }

func (m *ContractService) Create(ctx context.Context, req contractdomain.CreateRequest) (contractdomain.Contract, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(contractdomain.Contract), args.Error(1)
}

func (m *ContractService) Update(ctx context.Context, id string, req contractdomain.UpdateRequest) (contractdomain.Contract, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(contractdomain.Contract), args.Error(1)
}

func (m *ContractService) Activate(ctx context.Context, id string) (contractdomain.Contract, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(contractdomain.Contract), args.Error(1)
}

func (m *ContractService) Terminate(ctx context.Context, id string, req contractdomain.TerminateRequest) (contractdomain.Contract, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(contractdomain.Contract), args.Error(1)
}

func (m *ContractService) Expire(ctx context.Context) (contractdomain.ExpireResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(contractdomain.ExpireResult), args.Error(1)
}

func (m *ContractService) Get(ctx context.Context, id string) (contractdomain.Contract, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(contractdomain.Contract), args.Error(1)
}

func (m *ContractService) List(ctx context.Context, req contractdomain.ListRequest) ([]contractdomain.Contract, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]contractdomain.Contract), args.Error(1)
}

func (m *ContractService) ListByTenant(ctx context.Context, tenantID snowflake.ID) ([]contractdomain.Contract, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]contractdomain.Contract), args.Error(1)
}

type InvoiceService struct{ mock.Mock }

func (m *InvoiceService) Generate(ctx context.Context, req invoicedomain.GenerateRequest) (invoicedomain.Invoice, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(invoicedomain.Invoice), args.Error(1)
}

func (m *InvoiceService) GenerateWithReadings(ctx context.Context, req invoicedomain.GenerateWithReadingsRequest) (invoicedomain.Invoice, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(invoicedomain.Invoice), args.Error(1)
}

func (m *InvoiceService) Preview(ctx context.Context, req invoicedomain.GenerateWithReadingsRequest) (invoicedomain.Invoice, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(invoicedomain.Invoice), args.Error(1)
}

func (m *InvoiceService) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(invoicedomain.ListInvoiceResponse), args.Error(1)
}

func (m *InvoiceService) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(invoicedomain.Invoice), args.Error(1)
}

func (m *InvoiceService) ListByContract(ctx context.Context, contractID string) ([]invoicedomain.Invoice, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]invoicedomain.Invoice), args.Error(1)
}

func (m *InvoiceService) ListByContracts(ctx context.Context, contractIDs []snowflake.ID) ([]invoicedomain.Invoice, error) {
	args := m.Called(ctx, contractIDs)
	return args.Get(0).([]invoicedomain.Invoice), args.Error(1)
}

func (m *InvoiceService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *InvoiceService) RenderPDF(ctx context.Context, id string) (invoicedomain.RenderedPDF, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(invoicedomain.RenderedPDF), args.Error(1)
}

type PaymentService struct{ mock.Mock }

func (m *PaymentService) Apply(ctx context.Context, req paymentdomain.CreateRequest) (paymentdomain.Payment, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(paymentdomain.Payment), args.Error(1)
}

func (m *PaymentService) Get(ctx context.Context, id string) (paymentdomain.Payment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(paymentdomain.Payment), args.Error(1)
}

func (m *PaymentService) List(ctx context.Context, req paymentdomain.ListRequest) ([]paymentdomain.Payment, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]paymentdomain.Payment), args.Error(1)
}

func (m *PaymentService) ListByInvoice(ctx context.Context, invoiceID string) ([]paymentdomain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]paymentdomain.Payment), args.Error(1)
}

func (m *PaymentService) ListByInvoices(ctx context.Context, invoiceIDs []snowflake.ID) ([]paymentdomain.Payment, error) {
	args := m.Called(ctx, invoiceIDs)
	return args.Get(0).([]paymentdomain.Payment), args.Error(1)
}

func (m *PaymentService) RenderReceipt(ctx context.Context, id string) (paymentdomain.Receipt, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(paymentdomain.Receipt), args.Error(1)
}
