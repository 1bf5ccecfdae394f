package domain

import (
	"context"

	"github.com/shopspring/decimal"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
)

type CreateRequest struct {
	RoomID        string           `json:"roomId" validate:"required"`
	ServiceTypeID string           `json:"serviceTypeId" validate:"required"`
	PricePerUnit  *decimal.Decimal `json:"pricePerUnit"`
	FixedPrice    *decimal.Decimal `json:"fixedPrice"`
}

type UpdateRequest struct {
	PricePerUnit *decimal.Decimal `json:"pricePerUnit"`
	FixedPrice   *decimal.Decimal `json:"fixedPrice"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (View, error)
	Update(ctx context.Context, id string, req UpdateRequest) (View, error)
	Delete(ctx context.Context, id string) error
	ListByRoom(ctx context.Context, roomID string) ([]View, error)
}

var (
	ErrInvalidID           = ierr.NewError("invalid_room_service_id").WithHint("Invalid room service id").Mark(ierr.ErrInvalidInput)
	ErrNotFound            = ierr.NewError("room_service_not_found").WithHint("Room service not found").Mark(ierr.ErrNotFound)
	ErrRoomNotFound        = ierr.NewError("room_not_found").WithHint("Room not found").Mark(ierr.ErrNotFound)
	ErrServiceNotFound     = ierr.NewError("service_type_not_found").WithHint("Service type not found").Mark(ierr.ErrNotFound)
	ErrInactiveService     = ierr.NewError("service_type_inactive").WithHint("Service type is inactive and cannot be assigned").Mark(ierr.ErrInvalidState)
	ErrDuplicateAssignment = ierr.NewError("duplicate_room_service").WithHint("Service is already assigned to this room").Mark(ierr.ErrConflict)
)
