package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetrics holds the HTTP server instruments. Labels are limited to the
// route template and status code.
type HTTPMetrics struct {
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

func NewHTTPMetrics(cfg Config, provider metric.MeterProvider) (*HTTPMetrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "boardinghouse"
	}
	meter := provider.Meter(name + "/http")

	duration, err := meter.Float64Histogram("http.server.duration_ms")
	if err != nil {
		return nil, err
	}
	inFlight, err := meter.Int64UpDownCounter("http.server.in_flight")
	if err != nil {
		return nil, err
	}
	return &HTTPMetrics{duration: duration, inFlight: inFlight}, nil
}

// GinMiddleware records latency and in-flight counts per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		routeAttr := metric.WithAttributes(FilterAttributes(attribute.String("endpoint", normalizeEndpoint(c.FullPath())))...)

		m.inFlight.Add(ctx, 1, routeAttr)
		start := time.Now()
		c.Next()
		m.inFlight.Add(ctx, -1, routeAttr)

		m.duration.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(FilterAttributes(
			attribute.String("endpoint", normalizeEndpoint(c.FullPath())),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)...))
	}
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "unknown"
	}
	return endpoint
}
