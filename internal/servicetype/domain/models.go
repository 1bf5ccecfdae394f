package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryElectricity Category = "ELECTRICITY"
	CategoryWater       Category = "WATER"
	CategoryFixed       Category = "FIXED"
)

func ParseCategory(value string) (Category, bool) {
	switch c := Category(strings.ToUpper(strings.TrimSpace(value))); c {
	case CategoryElectricity, CategoryWater, CategoryFixed:
		return c, true
	default:
		return "", false
	}
}

// IsMetered reports whether the category is billed from meter readings.
func (c Category) IsMetered() bool {
	return c == CategoryElectricity || c == CategoryWater
}

type ServiceType struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"not null;size:128;uniqueIndex" json:"name"`
	Category     Category        `gorm:"not null;size:32" json:"category"`
	Unit         string          `gorm:"size:32" json:"unit"`
	PricePerUnit decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"pricePerUnit"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	IsActive     bool            `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updatedAt"`
}
