package server

import (
	"errors"
	"strconv"
	"strings"
	"time"

	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"github.com/smallbiznis/boardinghouse/pkg/date"
)

func invalidQueryParam(field, reason string) error {
	return ierr.NewErrorf("invalid query parameter %s", field).
		WithHintf("Invalid %s", field).
		WithReportableDetails(map[string]any{field: reason}).
		Mark(ierr.ErrInvalidInput)
}

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseOptionalTime accepts RFC3339 or YYYY-MM-DD; a bare date is widened to
// the end of the day when endOfDay is set.
func parseOptionalTime(value string, endOfDay bool) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &parsed, nil
	}
	if parsed, err := date.Parse(trimmed); err == nil {
		t := parsed.Time()
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, nil
	}
	return nil, errors.New("invalid_time")
}
