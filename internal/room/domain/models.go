package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOccupied    Status = "OCCUPIED"
	StatusMaintenance Status = "MAINTENANCE"
)

func ParseStatus(value string) (Status, bool) {
	switch s := Status(strings.ToUpper(strings.TrimSpace(value))); s {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return s, true
	default:
		return "", false
	}
}

type Room struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	BoardingHouseID snowflake.ID    `gorm:"not null;index" json:"boardingHouseId"`
	Code            string          `gorm:"not null;size:64;uniqueIndex" json:"code"`
	Floor           int             `gorm:"not null;default:1" json:"floor"`
	Area            decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"area"`
	MaxOccupants    int             `gorm:"not null;default:1" json:"maxOccupants"`
	BaseRent        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"baseRent"`
	Status          Status          `gorm:"not null;size:32;default:AVAILABLE" json:"status"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	CreatedAt       time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updatedAt"`
}
