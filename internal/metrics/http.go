package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type httpMetrics struct {
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
}

func newHTTPMetrics(meterProvider metric.MeterProvider, namespace string) (*httpMetrics, error) {
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{requestCounter: requestCounter, durationHisto: durationHisto}, nil
}

// HTTPMetricsMiddleware records request counts and durations labelled with method,
// route pattern (e.g. /v1/machines/:id) and status code. When the instruments cannot
// be created the middleware only passes the request on.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	metrics, err := newHTTPMetrics(meterProvider, namespace)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		opt := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", routeOf(c.FullPath())),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)
		metrics.requestCounter.Add(c.Request.Context(), 1, opt)
		metrics.durationHisto.Record(c.Request.Context(), time.Since(start).Seconds(), opt)
	}
}

// routeOf keeps label cardinality bounded: unmatched requests share "unknown".
func routeOf(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}
