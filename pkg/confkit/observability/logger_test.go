package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records for testing.
type testHandler struct {
	buf    *bytes.Buffer
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}

	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})

	enc := json.NewEncoder(h.buf)
	return enc.Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := &testHandler{
		buf:    h.buf,
		level:  h.level,
		attrs:  make([]slog.Attr, len(h.attrs)+len(attrs)),
		groups: h.groups,
	}
	copy(newH.attrs, h.attrs)
	copy(newH.attrs[len(h.attrs):], attrs)
	return newH
}

func (h *testHandler) WithGroup(name string) slog.Handler {
	return &testHandler{
		buf:    h.buf,
		level:  h.level,
		attrs:  h.attrs,
		groups: append(h.groups, name),
	}
}

func (h *testHandler) getLastRecord() map[string]any {
	lines := bytes.Split(h.buf.Bytes(), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if len(lines[i]) > 0 {
			var m map[string]any
			if err := json.Unmarshal(lines[i], &m); err == nil {
				return m
			}
		}
	}
	return nil
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds store and store_id", func(t *testing.T) {
		h := newTestHandler()
		logger := slog.New(h)

		enriched := EnrichLogger(logger, "mycog", "271828")
		enriched.Info("test message")

		record := h.getLastRecord()
		require.NotNil(t, record)
		assert.Equal(t, "mycog", record["store"])
		assert.Equal(t, "271828", record["store_id"])
		assert.Equal(t, "test message", record["msg"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "mycog", "271828"))
	})
}

func TestLogRegistration(t *testing.T) {
	t.Run("logs scope and key count at DEBUG level", func(t *testing.T) {
		h := newTestHandler()
		logger := slog.New(h)

		LogRegistration(logger, "GLOBAL", 3)

		record := h.getLastRecord()
		require.NotNil(t, record)
		assert.Equal(t, "DEBUG", record["level"])
		assert.Equal(t, "defaults registered", record["msg"])
		assert.Equal(t, "GLOBAL", record["scope"])
		assert.Equal(t, float64(3), record["keys"]) // JSON decodes ints as float64
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			LogRegistration(nil, "GLOBAL", 1)
		})
	})
}

func TestLogClear(t *testing.T) {
	t.Run("logs scope at INFO level", func(t *testing.T) {
		h := newTestHandler()
		logger := slog.New(h)

		LogClear(logger, "GUILD")

		record := h.getLastRecord()
		require.NotNil(t, record)
		assert.Equal(t, "INFO", record["level"])
		assert.Equal(t, "scope cleared", record["msg"])
		assert.Equal(t, "GUILD", record["scope"])
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			LogClear(nil, "GUILD")
		})
	})
}

func TestLogDriverOp(t *testing.T) {
	t.Run("logs op, joined path, and duration", func(t *testing.T) {
		h := newTestHandler()
		logger := slog.New(h)

		LogDriverOp(logger, "set", []string{"id", "GLOBAL", "enabled"}, 1.5)

		record := h.getLastRecord()
		require.NotNil(t, record)
		assert.Equal(t, "DEBUG", record["level"])
		assert.Equal(t, "driver op completed", record["msg"])
		assert.Equal(t, "set", record["op"])
		assert.Equal(t, "id/GLOBAL/enabled", record["path"])
		assert.Equal(t, 1.5, record["duration_ms"])
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			LogDriverOp(nil, "get", nil, 0)
		})
	})
}

func TestLogDriverError(t *testing.T) {
	t.Run("logs op, path, and error at ERROR level", func(t *testing.T) {
		h := newTestHandler()
		logger := slog.New(h)

		LogDriverError(logger, "set", []string{"id", "GLOBAL"}, errors.New("disk full"))

		record := h.getLastRecord()
		require.NotNil(t, record)
		assert.Equal(t, "ERROR", record["level"])
		assert.Equal(t, "driver op failed", record["msg"])
		assert.Equal(t, "set", record["op"])
		assert.Equal(t, "id/GLOBAL", record["path"])
		assert.Equal(t, "disk full", record["error"])
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			LogDriverError(nil, "set", nil, errors.New("x"))
		})
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(2 * time.Millisecond)
	elapsed := done()

	assert.GreaterOrEqual(t, elapsed, float64(0))
}
