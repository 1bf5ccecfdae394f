package domain

import (
	"context"

	"github.com/shopspring/decimal"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
)

type CreateRequest struct {
	BoardingHouseID string          `json:"boardingHouseId" validate:"required"`
	Code            string          `json:"code" validate:"required,max=64"`
	Floor           int             `json:"floor" validate:"gte=0"`
	Area            decimal.Decimal `json:"area"`
	MaxOccupants    int             `json:"maxOccupants" validate:"gte=0"`
	BaseRent        decimal.Decimal `json:"baseRent"`
	Status          string          `json:"status"`
	Description     string          `json:"description"`
}

type UpdateRequest struct {
	Code         *string          `json:"code" validate:"omitempty,max=64"`
	Floor        *int             `json:"floor" validate:"omitempty,gte=0"`
	Area         *decimal.Decimal `json:"area"`
	MaxOccupants *int             `json:"maxOccupants" validate:"omitempty,gte=0"`
	BaseRent     *decimal.Decimal `json:"baseRent"`
	Status       *string          `json:"status"`
	Description  *string          `json:"description"`
}

type ListRequest struct {
	BoardingHouseID string `form:"boardingHouseId"`
	Status          string `form:"status"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Room, error)
	Update(ctx context.Context, id string, req UpdateRequest) (Room, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Room, error)
	List(ctx context.Context, req ListRequest) ([]Room, error)
}

var (
	ErrInvalidID            = ierr.NewError("invalid_room_id").WithHint("Invalid room id").Mark(ierr.ErrInvalidInput)
	ErrNotFound             = ierr.NewError("room_not_found").WithHint("Room not found").Mark(ierr.ErrNotFound)
	ErrInvalidCode          = ierr.NewError("invalid_room_code").WithHint("Room code is required").Mark(ierr.ErrInvalidInput)
	ErrDuplicateCode        = ierr.NewError("duplicate_room_code").WithHint("A room with this code already exists").Mark(ierr.ErrConflict)
	ErrInvalidStatus        = ierr.NewError("invalid_room_status").WithHint("Status must be one of AVAILABLE, OCCUPIED, MAINTENANCE").Mark(ierr.ErrInvalidInput)
	ErrInvalidBoardingHouse = ierr.NewError("invalid_boarding_house").WithHint("Boarding house not found").Mark(ierr.ErrNotFound)
	ErrNegativeAmount       = ierr.NewError("negative_amount").WithHint("Rent and area must not be negative").Mark(ierr.ErrInvalidInput)
	ErrHasContracts         = ierr.NewError("room_has_contracts").WithHint("Room is referenced by contracts").Mark(ierr.ErrInvalidState)
	ErrStatusManaged        = ierr.NewError("room_status_managed").WithHint("Room status follows its active contract").Mark(ierr.ErrInvalidState)
)
