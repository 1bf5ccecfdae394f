package domain

import (
	"context"

	"github.com/shopspring/decimal"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
)

type ListFilter struct {
	ActiveOnly bool
	Category   Category
}

type CreateRequest struct {
	Name         string          `json:"name" validate:"required,max=128"`
	Category     string          `json:"category" validate:"required"`
	Unit         string          `json:"unit" validate:"max=32"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Description  string          `json:"description"`
	IsActive     *bool           `json:"isActive"`
}

// UpdateRequest applies only the fields that are set.
type UpdateRequest struct {
	Name         *string          `json:"name" validate:"omitempty,max=128"`
	Category     *string          `json:"category"`
	Unit         *string          `json:"unit" validate:"omitempty,max=32"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit"`
	Description  *string          `json:"description"`
	IsActive     *bool            `json:"isActive"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (ServiceType, error)
	Update(ctx context.Context, id string, req UpdateRequest) (ServiceType, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (ServiceType, error)
	List(ctx context.Context, filter ListFilter) ([]ServiceType, error)
}

var (
	ErrInvalidID       = ierr.NewError("invalid_service_type_id").WithHint("Invalid service type id").Mark(ierr.ErrInvalidInput)
	ErrNotFound        = ierr.NewError("service_type_not_found").WithHint("Service type not found").Mark(ierr.ErrNotFound)
	ErrInvalidName     = ierr.NewError("invalid_name").WithHint("Service type name is required").Mark(ierr.ErrInvalidInput)
	ErrInvalidCategory = ierr.NewError("invalid_category").WithHint("Category must be one of ELECTRICITY, WATER, FIXED").Mark(ierr.ErrInvalidInput)
	ErrNegativePrice   = ierr.NewError("negative_price").WithHint("Price must not be negative").Mark(ierr.ErrInvalidInput)
	ErrDuplicateName   = ierr.NewError("duplicate_service_type").WithHint("A service type with this name already exists").Mark(ierr.ErrConflict)
	ErrInUse           = ierr.NewError("service_type_in_use").WithHint("Service type is assigned to rooms; deactivate it instead").Mark(ierr.ErrInvalidState)
	ErrCategoryLocked  = ierr.NewError("category_locked").WithHint("Category cannot change while the service type is assigned to rooms").Mark(ierr.ErrInvalidState)
)
