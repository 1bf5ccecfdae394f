package tracing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsSensitiveKeys(t *testing.T) {
	got := SafeAttributes(
		attribute.String("http.route", "/invoices"),
		attribute.String("tenant.phone", "0900"),
		attribute.String("Authorization", "Bearer x"),
	)
	assert.Len(t, got, 1)
	assert.Equal(t, attribute.Key("http.route"), got[0].Key)
}

func TestSafeErrorHidesMessage(t *testing.T) {
	assert.Nil(t, SafeError(nil))
	err := SafeError(errors.New("tenant 0900-123 not found"))
	assert.NotContains(t, err.Error(), "0900")
}
