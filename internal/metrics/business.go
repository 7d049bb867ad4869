package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Operation statuses recorded with every business metric.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// BusinessMetrics records counts and durations of shopfloor operations. The domain
// label is the use case family ("machine", "maintenance", "notification") and the
// operation label the concrete action ("machine_create", "observer_update").
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration in seconds as a histogram.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
}

// StatusOf maps an operation result to its status label.
func StatusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// Observe records one finished operation that started at start.
func Observe(ctx context.Context, m BusinessMetrics, domain, operation string, start time.Time, err error) {
	status := StatusOf(err)
	m.RecordOperation(ctx, domain, operation, status)
	m.RecordDuration(ctx, domain, operation, time.Since(start), status)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
}

// NewBusinessMetrics creates the operation counter and duration histogram, both
// prefixed with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of shopfloor operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of shopfloor operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
	}, nil
}

func attributes(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1, attributes(domain, operation, status))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(), attributes(domain, operation, status))
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}
