// Package observability provides production-grade observability features
// for confkit: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"strings"
	"time"
)

// EnrichLogger adds store context to a logger.
// Returns a new logger with the store name and instance id attached.
func EnrichLogger(logger *slog.Logger, store, id string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("store", store),
		slog.String("store_id", id),
	)
}

// LogRegistration logs a completed defaults registration.
func LogRegistration(logger *slog.Logger, scope string, keys int) {
	if logger == nil {
		return
	}
	logger.Debug("defaults registered",
		slog.String("scope", scope),
		slog.Int("keys", keys),
	)
}

// LogClear logs a scope-wide clear.
func LogClear(logger *slog.Logger, scope string) {
	if logger == nil {
		return
	}
	logger.Info("scope cleared",
		slog.String("scope", scope),
	)
}

// LogDriverOp logs a completed driver operation.
func LogDriverOp(logger *slog.Logger, op string, path []string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("driver op completed",
		slog.String("op", op),
		slog.String("path", strings.Join(path, "/")),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDriverError logs a failed driver operation. Absence reported by the
// driver is not an error at this layer and should not be passed here.
func LogDriverError(logger *slog.Logger, op string, path []string, err error) {
	if logger == nil {
		return
	}
	logger.Error("driver op failed",
		slog.String("op", op),
		slog.String("path", strings.Join(path, "/")),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
