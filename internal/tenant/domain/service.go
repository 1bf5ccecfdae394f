package domain

import (
	"context"

	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"github.com/smallbiznis/boardinghouse/pkg/date"
)

type CreateRequest struct {
	FullName         string     `json:"fullName" validate:"required,max=255"`
	Phone            string     `json:"phone" validate:"required,max=32"`
	Email            string     `json:"email" validate:"omitempty,email"`
	IdentityNumber   string     `json:"identityNumber" validate:"max=64"`
	DateOfBirth      *date.Date `json:"dateOfBirth"`
	PermanentAddress string     `json:"permanentAddress"`
	Status           string     `json:"status"`
	UserID           string     `json:"userId" validate:"max=64"`
}

type UpdateRequest struct {
	FullName         *string    `json:"fullName" validate:"omitempty,max=255"`
	Phone            *string    `json:"phone" validate:"omitempty,max=32"`
	Email            *string    `json:"email" validate:"omitempty,email"`
	IdentityNumber   *string    `json:"identityNumber" validate:"omitempty,max=64"`
	DateOfBirth      *date.Date `json:"dateOfBirth"`
	PermanentAddress *string    `json:"permanentAddress"`
	Status           *string    `json:"status"`
	UserID           *string    `json:"userId" validate:"omitempty,max=64"`
}

type ListRequest struct {
	Status string `form:"status"`
	Query  string `form:"q"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Tenant, error)
	Update(ctx context.Context, id string, req UpdateRequest) (Tenant, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Tenant, error)
	GetByUserID(ctx context.Context, userID string) (Tenant, error)
	List(ctx context.Context, req ListRequest) ([]Tenant, error)
}

var (
	ErrInvalidID         = ierr.NewError("invalid_tenant_id").WithHint("Invalid tenant id").Mark(ierr.ErrInvalidInput)
	ErrNotFound          = ierr.NewError("tenant_not_found").WithHint("Tenant not found").Mark(ierr.ErrNotFound)
	ErrInvalidName       = ierr.NewError("invalid_full_name").WithHint("Full name is required").Mark(ierr.ErrInvalidInput)
	ErrInvalidPhone      = ierr.NewError("invalid_phone").WithHint("Phone is required").Mark(ierr.ErrInvalidInput)
	ErrInvalidStatus     = ierr.NewError("invalid_tenant_status").WithHint("Status must be ACTIVE or INACTIVE").Mark(ierr.ErrInvalidInput)
	ErrDuplicateIdentity = ierr.NewError("duplicate_identity_number").WithHint("A tenant with this identity number already exists").Mark(ierr.ErrConflict)
	ErrDuplicateUser     = ierr.NewError("duplicate_user_link").WithHint("This user is already linked to another tenant").Mark(ierr.ErrConflict)
	ErrHasContracts      = ierr.NewError("tenant_has_contracts").WithHint("Tenant is referenced by contracts").Mark(ierr.ErrInvalidState)
)
