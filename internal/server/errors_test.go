package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorKeepsSentinelsApart(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		kind      string
		retryable bool
	}{
		{name: "deadline", err: context.DeadlineExceeded, status: http.StatusServiceUnavailable, kind: "unavailable", retryable: true},
		{name: "timeout", err: errTimeout, status: http.StatusServiceUnavailable, kind: "unavailable", retryable: true},
		{name: "rate limited", err: errRateLimited, status: http.StatusTooManyRequests, kind: "rate_limited", retryable: true},
		{name: "duplicate period", err: invoicedomain.ErrDuplicatePeriod, status: http.StatusConflict, kind: "conflict"},
		{name: "contract not active", err: invoicedomain.ErrContractNotActive, status: http.StatusConflict, kind: "invalid_state"},
		{name: "busy", err: invoicedomain.ErrInvoiceBusy, status: http.StatusConflict, kind: "conflict", retryable: true},
		{name: "wrapped busy", err: fmt.Errorf("apply: %w", invoicedomain.ErrInvoiceBusy), status: http.StatusConflict, kind: "conflict", retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := mapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, body.Error.Type)
			assert.Equal(t, tt.retryable, retryable(tt.err))
		})
	}
}
