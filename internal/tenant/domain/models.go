package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/pkg/date"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func ParseStatus(value string) (Status, bool) {
	switch s := Status(strings.ToUpper(strings.TrimSpace(value))); s {
	case StatusActive, StatusInactive:
		return s, true
	default:
		return "", false
	}
}

type Tenant struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID           *string      `gorm:"size:64;uniqueIndex" json:"userId,omitempty"`
	FullName         string       `gorm:"not null;size:255" json:"fullName"`
	Phone            string       `gorm:"not null;size:32" json:"phone"`
	Email            string       `gorm:"size:255" json:"email,omitempty"`
	IdentityNumber   *string      `gorm:"size:64;uniqueIndex" json:"identityNumber,omitempty"`
	DateOfBirth      *date.Date   `json:"dateOfBirth,omitempty"`
	PermanentAddress string       `gorm:"type:text" json:"permanentAddress,omitempty"`
	Status           Status       `gorm:"not null;size:32;default:ACTIVE" json:"status"`
	CreatedAt        time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt        time.Time    `gorm:"not null" json:"updatedAt"`
}
