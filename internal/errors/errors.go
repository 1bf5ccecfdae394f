package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Kinds surfaced by the billing core. Every error returned from a service is
// marked with exactly one of them.
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrInvalidState     = new(ErrCodeInvalidState, "operation not allowed in current state")
	ErrConflict         = new(ErrCodeConflict, "resource conflict")
	ErrInvalidInput     = new(ErrCodeInvalidInput, "invalid input")
	ErrMissingInput     = new(ErrCodeMissingInput, "missing required input")
	ErrUnauthenticated  = new(ErrCodeUnauthenticated, "unauthenticated")
	ErrPermissionDenied = new(ErrCodePermissionDenied, "permission denied")
	ErrUnavailable      = new(ErrCodeUnavailable, "service unavailable")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystem, "system error")

	statusCodeMap = map[error]int{
		ErrNotFound:         http.StatusNotFound,
		ErrInvalidState:     http.StatusConflict,
		ErrConflict:         http.StatusConflict,
		ErrInvalidInput:     http.StatusBadRequest,
		ErrMissingInput:     http.StatusUnprocessableEntity,
		ErrUnauthenticated:  http.StatusUnauthorized,
		ErrPermissionDenied: http.StatusForbidden,
		ErrUnavailable:      http.StatusServiceUnavailable,
		ErrDatabase:         http.StatusInternalServerError,
		ErrSystem:           http.StatusInternalServerError,
	}

	// kindOrder fixes lookup order so a doubly marked error resolves deterministically.
	kindOrder = []*InternalError{
		ErrNotFound,
		ErrInvalidState,
		ErrConflict,
		ErrMissingInput,
		ErrInvalidInput,
		ErrUnauthenticated,
		ErrPermissionDenied,
		ErrUnavailable,
		ErrDatabase,
		ErrSystem,
	}
)

const (
	ErrCodeNotFound         = "not_found"
	ErrCodeInvalidState     = "invalid_state"
	ErrCodeConflict         = "conflict"
	ErrCodeInvalidInput     = "invalid_input"
	ErrCodeMissingInput     = "missing_input"
	ErrCodeUnauthenticated  = "unauthenticated"
	ErrCodePermissionDenied = "permission_denied"
	ErrCodeUnavailable      = "unavailable"
	ErrCodeDatabase         = "database_error"
	ErrCodeSystem           = "system_error"
)

// InternalError is a kind sentinel.
type InternalError struct {
	Code    string
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}
	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}
	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{Code: code, Message: message}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsMissingInput(err error) bool {
	return errors.Is(err, ErrMissingInput)
}

func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// Kind returns the code of the first kind the error is marked with, or
// ErrCodeSystem for unmarked errors.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, kind := range kindOrder {
		if errors.Is(err, kind) {
			return kind.Code
		}
	}
	return ErrCodeSystem
}

func HTTPStatusFromErr(err error) int {
	for _, kind := range kindOrder {
		if errors.Is(err, kind) {
			return statusCodeMap[kind]
		}
	}
	return http.StatusInternalServerError
}
