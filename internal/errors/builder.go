package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

const detailsPrefix = "__json__:"

// ErrorBuilder assembles an error chain. Mark must be the last call.
type ErrorBuilder struct {
	err error
}

func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

func NewErrorf(format string, args ...any) *ErrorBuilder {
	return &ErrorBuilder{err: errors.Newf(format, args...)}
}

// WithError wraps err. A nil err is replaced so Mark never returns nil.
func WithError(err error) *ErrorBuilder {
	if err == nil {
		err = errors.New("unknown error")
	}
	return &ErrorBuilder{err: err}
}

// WithMessage adds internal context that is never shown to clients.
func (b *ErrorBuilder) WithMessage(msg string) *ErrorBuilder {
	b.err = errors.WithMessage(b.err, msg)
	return b
}

// WithHint sets the client facing message.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	marshaled, err := json.Marshal(details)
	if err != nil {
		return b
	}
	b.err = errors.WithSafeDetails(b.err, detailsPrefix+"%s", errors.Safe(string(marshaled)))
	return b
}

// Mark tags the chain with the kind reference. The result keeps its own
// mark, so two errors of the same kind are not Is-equal to each other.
func (b *ErrorBuilder) Mark(reference error) error {
	b.err = &identified{cause: errors.Mark(b.err, reference)}
	return b.err
}

// identified sits above the kind mark so the outermost mark of a built error
// is derived from its own message and chain.
type identified struct {
	cause error
}

func (e *identified) Error() string { return e.cause.Error() }
func (e *identified) Cause() error  { return e.cause }
func (e *identified) Unwrap() error { return e.cause }

// Hint returns the first non-empty hint attached to err.
func Hint(err error) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return ""
}

// ReportableDetails collects the structured details attached with WithReportableDetails.
func ReportableDetails(err error) map[string]any {
	details := make(map[string]any)
	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			if !strings.HasPrefix(payload, detailsPrefix) {
				continue
			}
			var parsed map[string]any
			if jsonErr := json.Unmarshal([]byte(payload[len(detailsPrefix):]), &parsed); jsonErr != nil {
				continue
			}
			for k, v := range parsed {
				details[k] = v
			}
		}
	}
	return details
}
