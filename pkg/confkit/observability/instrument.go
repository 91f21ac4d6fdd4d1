package observability

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/randalmurphal/confkit/pkg/confkit/driver"
)

// instrumentedDriver decorates a driver with logging, metrics, and tracing.
type instrumentedDriver struct {
	next    driver.Driver
	logger  *slog.Logger
	metrics MetricsRecorder
	spans   SpanManager
}

// Compile-time interface check.
var _ driver.Driver = (*instrumentedDriver)(nil)

// InstrumentDriver wraps d so every operation is logged, measured, and
// traced. Nil logger, metrics, or spans disable the respective feature.
// Absence reported by the driver counts as a normal outcome, not a failure.
func InstrumentDriver(d driver.Driver, logger *slog.Logger, metrics MetricsRecorder, spans SpanManager) driver.Driver {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	if spans == nil {
		spans = NoopSpanManager{}
	}
	return &instrumentedDriver{next: d, logger: logger, metrics: metrics, spans: spans}
}

// observe runs fn as the named driver operation with full instrumentation.
func (d *instrumentedDriver) observe(ctx context.Context, op string, path []string, fn func(ctx context.Context) error) error {
	ctx, span := d.spans.StartOpSpan(ctx, op, path)
	done := TimedOperation()
	start := time.Now()

	err := fn(ctx)

	failure := err
	if errors.Is(failure, driver.ErrNotFound) {
		failure = nil
	}

	d.metrics.RecordDriverOp(ctx, op, time.Since(start), failure)
	d.spans.EndSpanWithError(span, failure)
	if failure != nil {
		LogDriverError(d.logger, op, path, failure)
	} else {
		LogDriverOp(d.logger, op, path, done())
	}
	return err
}

// Get implements driver.Driver.
func (d *instrumentedDriver) Get(ctx context.Context, path []string) (any, error) {
	var value any
	err := d.observe(ctx, "get", path, func(ctx context.Context) error {
		var err error
		value, err = d.next.Get(ctx, path)
		return err
	})
	return value, err
}

// Set implements driver.Driver.
func (d *instrumentedDriver) Set(ctx context.Context, path []string, value any) error {
	return d.observe(ctx, "set", path, func(ctx context.Context) error {
		return d.next.Set(ctx, path, value)
	})
}

// Delete implements driver.Driver.
func (d *instrumentedDriver) Delete(ctx context.Context, path []string) error {
	return d.observe(ctx, "delete", path, func(ctx context.Context) error {
		return d.next.Delete(ctx, path)
	})
}

// Close implements driver.Driver.
func (d *instrumentedDriver) Close() error {
	return d.next.Close()
}
