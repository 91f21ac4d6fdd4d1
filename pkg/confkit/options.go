package confkit

import (
	"log/slog"

	"github.com/randalmurphal/confkit/pkg/confkit/observability"
)

// storeConfig holds construction-time configuration for a Config.
type storeConfig struct {
	strict  bool
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// Option configures Config construction behavior.
type Option func(*storeConfig)

// WithStrictRegistration makes access to unregistered attributes a hard error
// instead of silently resolving to a value with no default.
//
// Enabling this surfaces typos in attribute names immediately rather than as
// mysterious nil reads later.
func WithStrictRegistration() Option {
	return func(c *storeConfig) {
		c.strict = true
	}
}

// WithLogger attaches a structured logger. Registration, clears, and driver
// operations are logged through it. Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *storeConfig) {
		c.logger = logger
	}
}

// WithMetrics records a metric for every driver operation.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *storeConfig) {
		c.metrics = m
	}
}

// WithSpans traces every driver operation.
func WithSpans(s observability.SpanManager) Option {
	return func(c *storeConfig) {
		c.spans = s
	}
}
