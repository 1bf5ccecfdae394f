package domain

import (
	"context"
	"time"

	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"github.com/smallbiznis/boardinghouse/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListAuditLogRequest struct {
	pagination.Pagination
	Action     string
	TargetType string
	TargetID   string
	StartAt    *time.Time
	EndAt      *time.Time
}

type ListAuditLogResponse struct {
	pagination.PageInfo
	AuditLogs []AuditLog `json:"auditLogs"`
}

// Entry describes one auditable event. The actor and request id are taken
// from the context.
type Entry struct {
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]any
}

type Service interface {
	// Record writes entry using tx when non-nil so the entry commits with the
	// business change.
	Record(ctx context.Context, tx *gorm.DB, entry Entry) error
	List(ctx context.Context, req ListAuditLogRequest) (ListAuditLogResponse, error)
}

var (
	ErrInvalidPageToken = ierr.NewError("invalid_page_token").WithHint("Invalid page token").Mark(ierr.ErrInvalidInput)
	ErrInvalidTimeRange = ierr.NewError("invalid_time_range").WithHint("startAt must be before endAt").Mark(ierr.ErrInvalidInput)
	ErrInvalidAction    = ierr.NewError("invalid_action").WithHint("Audit action is required").Mark(ierr.ErrInvalidInput)
)
