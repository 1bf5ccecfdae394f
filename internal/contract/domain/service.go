package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"github.com/smallbiznis/boardinghouse/pkg/date"
)

type CreateRequest struct {
	Code         string          `json:"code" validate:"required,max=64"`
	RoomID       string          `json:"roomId" validate:"required"`
	TenantID     string          `json:"tenantId" validate:"required"`
	CoTenantIDs  []string        `json:"coTenantIds"`
	StartDate    date.Date       `json:"startDate"`
	EndDate      date.Date       `json:"endDate"`
	Deposit      decimal.Decimal `json:"deposit"`
	MonthlyRent  decimal.Decimal `json:"monthlyRent"`
	BillingCycle string          `json:"billingCycle"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes"`
}

// UpdateRequest edits a DRAFT contract. Unset fields keep their value.
type UpdateRequest struct {
	TenantID     *string          `json:"tenantId"`
	CoTenantIDs  *[]string        `json:"coTenantIds"`
	StartDate    *date.Date       `json:"startDate"`
	EndDate      *date.Date       `json:"endDate"`
	Deposit      *decimal.Decimal `json:"deposit"`
	MonthlyRent  *decimal.Decimal `json:"monthlyRent"`
	BillingCycle *string          `json:"billingCycle"`
	Notes        *string          `json:"notes"`
}

type TerminateRequest struct {
	Reason string     `json:"reason" validate:"max=1000"`
	Date   *date.Date `json:"terminationDate"`
}

type ListRequest struct {
	RoomID   string `form:"roomId"`
	TenantID string `form:"tenantId"`
	Status   string `form:"status"`
}

type ExpireResult struct {
	Expired []Contract `json:"expired"`
	Count   int        `json:"count"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Contract, error)
	Update(ctx context.Context, id string, req UpdateRequest) (Contract, error)
	Activate(ctx context.Context, id string) (Contract, error)
	Terminate(ctx context.Context, id string, req TerminateRequest) (Contract, error)
	// Expire persists EXPIRED for every ACTIVE contract past its end date.
	Expire(ctx context.Context) (ExpireResult, error)
	Get(ctx context.Context, id string) (Contract, error)
	List(ctx context.Context, req ListRequest) ([]Contract, error)
	// ListByTenant returns contracts where the tenant is main or co-tenant.
	ListByTenant(ctx context.Context, tenantID snowflake.ID) ([]Contract, error)
}

var (
	ErrInvalidID           = ierr.NewError("invalid_contract_id").WithHint("Invalid contract id").Mark(ierr.ErrInvalidInput)
	ErrNotFound            = ierr.NewError("contract_not_found").WithHint("Contract not found").Mark(ierr.ErrNotFound)
	ErrInvalidCode         = ierr.NewError("invalid_contract_code").WithHint("Contract code is required").Mark(ierr.ErrInvalidInput)
	ErrDuplicateCode       = ierr.NewError("duplicate_contract_code").WithHint("A contract with this code already exists").Mark(ierr.ErrConflict)
	ErrRoomNotFound        = ierr.NewError("room_not_found").WithHint("Room not found").Mark(ierr.ErrNotFound)
	ErrTenantNotFound      = ierr.NewError("tenant_not_found").WithHint("Tenant not found").Mark(ierr.ErrNotFound)
	ErrInvalidDates        = ierr.NewError("invalid_contract_dates").WithHint("startDate and endDate are required and endDate must not be before startDate").Mark(ierr.ErrInvalidInput)
	ErrInvalidDeposit      = ierr.NewError("invalid_deposit").WithHint("Deposit must not be negative").Mark(ierr.ErrInvalidInput)
	ErrInvalidRent         = ierr.NewError("invalid_monthly_rent").WithHint("Monthly rent must be greater than zero").Mark(ierr.ErrInvalidInput)
	ErrInvalidBillingCycle = ierr.NewError("invalid_billing_cycle").WithHint("Billing cycle must be MONTHLY, QUARTERLY or YEARLY").Mark(ierr.ErrInvalidInput)
	ErrInvalidStatus       = ierr.NewError("invalid_contract_status").WithHint("A new contract is either DRAFT or ACTIVE").Mark(ierr.ErrInvalidInput)
	ErrNotDraft            = ierr.NewError("contract_not_draft").WithHint("Only DRAFT contracts can be changed").Mark(ierr.ErrInvalidState)
	ErrNotActive           = ierr.NewError("contract_not_active").WithHint("Contract is not ACTIVE").Mark(ierr.ErrInvalidState)
	ErrRoomBusy            = ierr.NewError("room_has_active_contract").WithHint("Room already has an ACTIVE contract").Mark(ierr.ErrInvalidState)
	ErrRoomMaintenance     = ierr.NewError("room_under_maintenance").WithHint("Room is under maintenance").Mark(ierr.ErrInvalidState)
	ErrAlreadyEnded        = ierr.NewError("contract_already_ended").WithHint("Contract end date has already passed").Mark(ierr.ErrInvalidState)
)
