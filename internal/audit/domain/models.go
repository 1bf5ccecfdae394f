package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type ActorType string

const (
	ActorTypeUser   ActorType = "user"
	ActorTypeSystem ActorType = "system"
)

const (
	ActionContractCreate    = "contract.create"
	ActionContractActivate  = "contract.activate"
	ActionContractTerminate = "contract.terminate"
	ActionContractExpire    = "contract.expire"
	ActionInvoiceGenerate   = "invoice.generate"
	ActionInvoiceDelete     = "invoice.delete"
	ActionPaymentApply      = "payment.apply"
)

type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	ActorType  string            `gorm:"not null;size:32" json:"actorType"`
	ActorID    *string           `gorm:"size:64" json:"actorId,omitempty"`
	Action     string            `gorm:"not null;size:64;index" json:"action"`
	TargetType string            `gorm:"not null;size:64" json:"targetType"`
	TargetID   *string           `gorm:"size:64;index" json:"targetId,omitempty"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	RequestID  *string           `gorm:"size:64" json:"requestId,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;index" json:"createdAt"`
}

type AuditCursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

type ListFilter struct {
	Action     string
	TargetType string
	TargetID   string
	StartAt    *time.Time
	EndAt      *time.Time
	Cursor     *AuditCursor
	Limit      int
}
