package domain

import (
	"context"

	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
)

type CreateRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Address        string `json:"address"`
	Description    string `json:"description"`
	NumberOfFloors int    `json:"numberOfFloors" validate:"gte=0"`
	Notes          string `json:"notes"`
}

type UpdateRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=255"`
	Address        *string `json:"address"`
	Description    *string `json:"description"`
	NumberOfFloors *int    `json:"numberOfFloors" validate:"omitempty,gte=0"`
	Notes          *string `json:"notes"`
}

type ListRequest struct {
	Name string `form:"name"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (BoardingHouse, error)
	Update(ctx context.Context, id string, req UpdateRequest) (BoardingHouse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (BoardingHouse, error)
	List(ctx context.Context, req ListRequest) ([]BoardingHouse, error)
}

var (
	ErrInvalidID   = ierr.NewError("invalid_boarding_house_id").WithHint("Invalid boarding house id").Mark(ierr.ErrInvalidInput)
	ErrNotFound    = ierr.NewError("boarding_house_not_found").WithHint("Boarding house not found").Mark(ierr.ErrNotFound)
	ErrInvalidName = ierr.NewError("invalid_name").WithHint("Boarding house name is required").Mark(ierr.ErrInvalidInput)
	ErrHasRooms    = ierr.NewError("boarding_house_has_rooms").WithHint("Boarding house still has rooms").Mark(ierr.ErrInvalidState)
)
