package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes billing instruments. Each event is recorded on the otel
// meter and mirrored on a prometheus counter scraped from /metrics.
type Metrics struct {
	invoicesGenerated metric.Int64Counter
	paymentsApplied   metric.Int64Counter
	billingRejected   metric.Int64Counter
	rateLimitDenied   metric.Int64Counter

	promInvoices  *prometheus.CounterVec
	promPayments  *prometheus.CounterVec
	promRejected  *prometheus.CounterVec
	promRateLimit *prometheus.CounterVec
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the billing instruments. registerer may be nil, in which
// case the prometheus mirrors are not registered anywhere.
func New(cfg Config, provider metric.MeterProvider, registerer prometheus.Registerer) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "boardinghouse"
	}
	meter := provider.Meter(name)

	invoicesGenerated, err := meter.Int64Counter("boardinghouse_invoices_generated_total")
	if err != nil {
		return nil, err
	}
	paymentsApplied, err := meter.Int64Counter("boardinghouse_payments_applied_total")
	if err != nil {
		return nil, err
	}
	billingRejected, err := meter.Int64Counter("boardinghouse_billing_rejected_total")
	if err != nil {
		return nil, err
	}
	rateLimitDenied, err := meter.Int64Counter("boardinghouse_rate_limit_denied_total")
	if err != nil {
		return nil, err
	}

	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{"service": name, "env": environment}

	m := &Metrics{
		invoicesGenerated: invoicesGenerated,
		paymentsApplied:   paymentsApplied,
		billingRejected:   billingRejected,
		rateLimitDenied:   rateLimitDenied,
		promInvoices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "boardinghouse_invoices_generated_total",
			Help:        "Invoices generated by generation mode.",
			ConstLabels: constLabels,
		}, []string{"mode"}),
		promPayments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "boardinghouse_payments_applied_total",
			Help:        "Payments applied by payment method and resulting invoice status.",
			ConstLabels: constLabels,
		}, []string{"method", "status"}),
		promRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "boardinghouse_billing_rejected_total",
			Help:        "Rejected billing operations by operation and error kind.",
			ConstLabels: constLabels,
		}, []string{"operation", "reason"}),
		promRateLimit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "boardinghouse_rate_limit_denied_total",
			Help:        "Requests denied by the portal rate limiter.",
			ConstLabels: constLabels,
		}, []string{"endpoint"}),
	}

	if registerer != nil {
		for _, c := range []prometheus.Collector{m.promInvoices, m.promPayments, m.promRejected, m.promRateLimit} {
			if err := registerer.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// RecordInvoiceGenerated counts one generated invoice. mode is "plain" or "readings".
func (m *Metrics) RecordInvoiceGenerated(ctx context.Context, mode string) {
	if m == nil {
		return
	}
	mode = strings.TrimSpace(mode)
	m.invoicesGenerated.Add(ctx, 1, metric.WithAttributes(FilterAttributes(attribute.String("mode", mode))...))
	m.promInvoices.WithLabelValues(mode).Inc()
}

func (m *Metrics) RecordPaymentApplied(ctx context.Context, method, status string) {
	if m == nil {
		return
	}
	m.paymentsApplied.Add(ctx, 1, metric.WithAttributes(FilterAttributes(
		attribute.String("method", method),
		attribute.String("status", status),
	)...))
	m.promPayments.WithLabelValues(method, status).Inc()
}

// RecordRejected counts a billing operation that failed with a domain error kind.
func (m *Metrics) RecordRejected(ctx context.Context, operation, reason string) {
	if m == nil {
		return
	}
	m.billingRejected.Add(ctx, 1, metric.WithAttributes(FilterAttributes(
		attribute.String("operation", operation),
		attribute.String("reason", reason),
	)...))
	m.promRejected.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint string) {
	if m == nil {
		return
	}
	endpoint = normalizeEndpoint(endpoint)
	m.rateLimitDenied.Add(ctx, 1, metric.WithAttributes(FilterAttributes(attribute.String("endpoint", endpoint))...))
	m.promRateLimit.WithLabelValues(endpoint).Inc()
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"endpoint":    {},
	"status_code": {},
	"mode":        {},
	"method":      {},
	"status":      {},
	"operation":   {},
	"reason":      {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
