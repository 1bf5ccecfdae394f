package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/boardinghouse/pkg/date"
)

type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusActive     Status = "ACTIVE"
	StatusTerminated Status = "TERMINATED"
	StatusExpired    Status = "EXPIRED"
)

func ParseStatus(value string) (Status, bool) {
	switch s := Status(strings.ToUpper(strings.TrimSpace(value))); s {
	case StatusDraft, StatusActive, StatusTerminated, StatusExpired:
		return s, true
	default:
		return "", false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusTerminated || s == StatusExpired
}

type BillingCycle string

const (
	BillingCycleMonthly   BillingCycle = "MONTHLY"
	BillingCycleQuarterly BillingCycle = "QUARTERLY"
	BillingCycleYearly    BillingCycle = "YEARLY"
)

func ParseBillingCycle(value string) (BillingCycle, bool) {
	switch c := BillingCycle(strings.ToUpper(strings.TrimSpace(value))); c {
	case BillingCycleMonthly, BillingCycleQuarterly, BillingCycleYearly:
		return c, true
	default:
		return "", false
	}
}

// Contract binds a main tenant and optional co-tenants to a room.
// StoredStatus is the persisted lifecycle state; Status is what readers see
// after Resolve, which reports an ACTIVE contract past its end date as EXPIRED.
type Contract struct {
	ID                snowflake.ID    `gorm:"primaryKey" json:"id"`
	Code              string          `gorm:"not null;size:64;uniqueIndex" json:"code"`
	RoomID            snowflake.ID    `gorm:"not null;index" json:"roomId"`
	TenantID          snowflake.ID    `gorm:"not null;index" json:"tenantId"`
	StartDate         date.Date       `gorm:"not null" json:"startDate"`
	EndDate           date.Date       `gorm:"not null" json:"endDate"`
	Deposit           decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"deposit"`
	MonthlyRent       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"monthlyRent"`
	BillingCycle      BillingCycle    `gorm:"not null;size:16;default:MONTHLY" json:"billingCycle"`
	StoredStatus      Status          `gorm:"column:status;not null;size:16;index" json:"-"`
	Notes             string          `gorm:"type:text" json:"notes,omitempty"`
	ActivatedAt       *time.Time      `json:"activatedAt,omitempty"`
	TerminatedAt      *date.Date      `json:"terminatedAt,omitempty"`
	TerminationReason string          `gorm:"type:text" json:"terminationReason,omitempty"`
	CreatedAt         time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt         time.Time       `gorm:"not null" json:"updatedAt"`

	Status      Status         `gorm:"-" json:"status"`
	CoTenantIDs []snowflake.ID `gorm:"-" json:"coTenantIds"`
}

// ContractTenant lists the co-tenants of a contract. The main tenant lives on
// the contract row.
type ContractTenant struct {
	ContractID snowflake.ID `gorm:"primaryKey"`
	TenantID   snowflake.ID `gorm:"primaryKey;index"`
}

// EffectiveStatus derives the status as of today.
func (c Contract) EffectiveStatus(today date.Date) Status {
	if c.StoredStatus == StatusActive && c.EndDate.Before(today) {
		return StatusExpired
	}
	return c.StoredStatus
}

// Resolve fills Status for today and returns the contract.
func (c *Contract) Resolve(today date.Date) *Contract {
	c.Status = c.EffectiveStatus(today)
	if c.CoTenantIDs == nil {
		c.CoTenantIDs = []snowflake.ID{}
	}
	return c
}

// DaysRemaining counts days until the end date for a running contract.
func (c Contract) DaysRemaining(today date.Date) int {
	if c.EffectiveStatus(today) != StatusActive {
		return 0
	}
	days := today.DaysUntil(c.EndDate)
	if days < 0 {
		return 0
	}
	return days
}

// TenantIDs returns the main tenant followed by co-tenants.
func (c Contract) TenantIDs() []snowflake.ID {
	ids := make([]snowflake.ID, 0, len(c.CoTenantIDs)+1)
	ids = append(ids, c.TenantID)
	return append(ids, c.CoTenantIDs...)
}
