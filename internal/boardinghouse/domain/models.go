package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type BoardingHouse struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"not null;size:255" json:"name"`
	Slug           string       `gorm:"not null;size:255;index" json:"slug"`
	Address        string       `gorm:"type:text" json:"address"`
	Description    string       `gorm:"type:text" json:"description,omitempty"`
	NumberOfFloors int          `gorm:"not null;default:1" json:"numberOfFloors"`
	Notes          string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updatedAt"`
}
