package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
)

// RoomService assigns a service type to a room. Only the price column that
// matches the service type category is populated.
type RoomService struct {
	ID            snowflake.ID     `gorm:"primaryKey" json:"id"`
	RoomID        snowflake.ID     `gorm:"not null;uniqueIndex:ux_room_services_room_type" json:"roomId"`
	ServiceTypeID snowflake.ID     `gorm:"not null;uniqueIndex:ux_room_services_room_type;index" json:"serviceTypeId"`
	PricePerUnit  *decimal.Decimal `gorm:"type:numeric(18,2)" json:"pricePerUnit"`
	FixedPrice    *decimal.Decimal `gorm:"type:numeric(18,2)" json:"fixedPrice"`
	CreatedAt     time.Time        `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time        `gorm:"not null" json:"updatedAt"`
}

// View is an assignment joined with its service type.
type View struct {
	ID              snowflake.ID               `json:"id"`
	RoomID          snowflake.ID               `json:"roomId"`
	ServiceTypeID   snowflake.ID               `json:"serviceTypeId"`
	ServiceTypeName string                     `json:"serviceTypeName"`
	ServiceCategory servicetypedomain.Category `json:"serviceCategory"`
	Unit            string                     `json:"unit"`
	DefaultPrice    decimal.Decimal            `json:"-"`
	IsActive        bool                       `json:"-"`
	PricePerUnit    *decimal.Decimal           `json:"pricePerUnit"`
	FixedPrice      *decimal.Decimal           `json:"fixedPrice"`
}

// Pricing resolves the effective price for billing.
func (v View) Pricing() servicetypedomain.Pricing {
	st := servicetypedomain.ServiceType{
		ID:           v.ServiceTypeID,
		Name:         v.ServiceTypeName,
		Category:     v.ServiceCategory,
		Unit:         v.Unit,
		PricePerUnit: v.DefaultPrice,
	}
	return servicetypedomain.EffectivePricing(st, v.PricePerUnit, v.FixedPrice)
}
