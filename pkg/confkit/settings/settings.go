// Package settings loads driver backend configuration from files and opens
// the matching driver. It is the bootstrap layer: applications describe which
// backend to use in a small YAML or JSON document and hand the result to
// Open.
package settings

import (
	"time"
)

// Settings wraps a map[string]any for type-safe value extraction.
// All accessor methods return default values if the key is missing
// or the value cannot be converted to the requested type.
type Settings struct {
	data map[string]any
}

// New creates Settings from the given map.
// If data is nil, empty Settings are returned.
func New(data map[string]any) Settings {
	if data == nil {
		data = make(map[string]any)
	}
	return Settings{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (s Settings) String(key, defaultVal string) string {
	v, ok := s.data[key]
	if !ok {
		return defaultVal
	}
	if str, ok := v.(string); ok {
		return str
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (s Settings) Bool(key string, defaultVal bool) bool {
	v, ok := s.data[key]
	if !ok {
		return defaultVal
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultVal
}

// Duration returns the duration value for key, or defaultVal if missing or invalid.
//
// Accepts:
//   - string: parsed with time.ParseDuration
//   - int: interpreted as seconds
//   - int64: interpreted as seconds
//   - float64: interpreted as seconds
//   - time.Duration: used directly
func (s Settings) Duration(key string, defaultVal time.Duration) time.Duration {
	v, ok := s.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	case float64:
		return time.Duration(val * float64(time.Second))
	case int:
		return time.Duration(val) * time.Second
	case int64:
		return time.Duration(val) * time.Second
	case time.Duration:
		return val
	}
	return defaultVal
}

// Has returns true if the key exists in the settings.
func (s Settings) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (s Settings) Raw() map[string]any {
	return s.data
}
