package settings

import (
	"fmt"

	"github.com/randalmurphal/confkit/pkg/confkit/driver"
)

// Backend names recognized by Open.
const (
	BackendMemory   = "memory"
	BackendJSONFile = "jsonfile"
	BackendSQLite   = "sqlite"
)

// Open constructs the driver described by the settings document.
//
// Recognized keys:
//
//	backend:       "memory" | "jsonfile" | "sqlite" (default "memory")
//	path:          file path, required for jsonfile and sqlite
//	busy_timeout:  sqlite lock wait (duration string or seconds)
func Open(s Settings) (driver.Driver, error) {
	backend := s.String("backend", BackendMemory)
	switch backend {
	case BackendMemory:
		return driver.NewMemory(), nil
	case BackendJSONFile:
		path := s.String("path", "")
		if path == "" {
			return nil, fmt.Errorf("backend %q: path is required", backend)
		}
		return driver.OpenJSONFile(path)
	case BackendSQLite:
		path := s.String("path", "")
		if path == "" {
			return nil, fmt.Errorf("backend %q: path is required", backend)
		}
		return driver.OpenSQLite(path, s.Duration("busy_timeout", 0))
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
