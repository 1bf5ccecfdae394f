package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/smallbiznis/boardinghouse/pkg/validator"
)

const retryAfterSeconds = 1

type errorPayload struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type errorResponse struct {
	Message string       `json:"message"`
	Error   errorPayload `json:"error"`
}

var (
	errRouteNotFound = ierr.NewError("route not found").WithHint("Resource not found").Mark(ierr.ErrNotFound)
	errRateLimited   = ierr.NewError("rate limited").WithHint("Too many requests, retry shortly").Mark(ierr.ErrUnavailable)
	errTimeout       = ierr.NewError("request timed out").WithHint("The request took too long, retry shortly").Mark(ierr.ErrUnavailable)
	errMissingToken  = ierr.NewError("missing bearer token").WithHint("Authentication required").Mark(ierr.ErrUnauthenticated)
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, body := mapError(lastErr.Err)
		if retryable(lastErr.Err) && c.Writer.Header().Get("Retry-After") == "" {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		}
		c.AbortWithStatusJSON(status, body)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// bindJSON decodes and validates the body into req.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return ierr.WithError(err).
			WithHint("Malformed request body").
			WithReportableDetails(map[string]any{"body": err.Error()}).
			Mark(ierr.ErrInvalidInput)
	}
	return validator.ValidateRequest(req)
}

func bindQuery(c *gin.Context, req any) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return ierr.WithError(err).
			WithHint("Malformed query parameters").
			WithReportableDetails(map[string]any{"query": err.Error()}).
			Mark(ierr.ErrInvalidInput)
	}
	return validator.ValidateRequest(req)
}

func mapError(err error) (int, errorResponse) {
	if ierr.Is(err, context.DeadlineExceeded) && ierr.Kind(err) == ierr.ErrCodeSystem {
		err = errTimeout
	}

	status := ierr.HTTPStatusFromErr(err)
	kind := ierr.Kind(err)
	if ierr.Is(err, errRateLimited) {
		status = http.StatusTooManyRequests
		kind = "rate_limited"
	}

	message := ierr.Hint(err)
	if message == "" || status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		message = http.StatusText(status)
	}

	payload := errorPayload{Type: kind, Message: message}
	if details := ierr.ReportableDetails(err); len(details) > 0 {
		payload.Details = details
	}
	return status, errorResponse{Message: message, Error: payload}
}

func retryable(err error) bool {
	return ierr.Is(err, ierr.ErrUnavailable) ||
		ierr.Is(err, context.DeadlineExceeded) ||
		ierr.Is(err, invoicedomain.ErrInvoiceBusy)
}

func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	status, body := mapError(err)
	return body.Error.Type, strconv.Itoa(status)
}
