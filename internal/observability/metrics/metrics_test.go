package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("tenant_id", "123"),
		attribute.String("mode", "readings"),
		attribute.String("reason", "conflict"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if attr.Key == "tenant_id" {
			t.Fatalf("expected tenant_id to be dropped")
		}
	}
}

func TestMetricsMirrorsPrometheusCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(Config{ServiceName: "boardinghouse", Environment: "test"}, noop.NewMeterProvider(), reg)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordInvoiceGenerated(ctx, "readings")
	m.RecordInvoiceGenerated(ctx, "readings")
	m.RecordPaymentApplied(ctx, "CASH", "PAID")
	m.RecordRejected(ctx, "payment.apply", "invalid_input")

	require.Equal(t, float64(2), testutil.ToFloat64(m.promInvoices.WithLabelValues("readings")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.promPayments.WithLabelValues("CASH", "PAID")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.promRejected.WithLabelValues("payment.apply", "invalid_input")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordInvoiceGenerated(context.Background(), "plain")
	m.RecordRateLimitDenied(context.Background(), "/portal/me")
}
