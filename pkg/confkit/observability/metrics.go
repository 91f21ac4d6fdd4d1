package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records confkit driver metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDriverOp records a driver operation with its duration and error status.
	RecordDriverOp(ctx context.Context, op string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	driverOps     metric.Int64Counter
	driverLatency metric.Float64Histogram
	driverErrors  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("confkit")

	driverOps, err := meter.Int64Counter("confkit.driver.ops",
		metric.WithDescription("Number of driver operations"),
	)
	if err != nil {
		return nil, err
	}

	driverLatency, err := meter.Float64Histogram("confkit.driver.latency_ms",
		metric.WithDescription("Driver operation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	driverErrors, err := meter.Int64Counter("confkit.driver.errors",
		metric.WithDescription("Number of driver operation errors"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		driverOps:     driverOps,
		driverLatency: driverLatency,
		driverErrors:  driverErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDriverOp records a driver operation.
func (m *otelMetrics) RecordDriverOp(ctx context.Context, op string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("op", op),
	}

	m.driverOps.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.driverLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.driverErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
