// Package driver defines the persistence contract for confkit and provides
// memory, JSON file, and SQLite backed implementations.
//
// A driver stores one nested JSON-like document and addresses entries inside
// it by path: an ordered sequence of string segments. Drivers have no schema
// knowledge; defaults and scope layout are entirely the core's concern.
package driver

import (
	"context"
	"errors"
)

// Driver is the pluggable persistence backend consumed by the confkit core.
// Implementations must be safe for concurrent use.
type Driver interface {
	// Get retrieves the entry at path.
	// Returns ErrNotFound when no entry exists at that exact path.
	Get(ctx context.Context, path []string) (any, error)

	// Set replaces the entire entry at path, creating intermediate
	// documents as needed. Values are JSON-like: nested maps, slices,
	// strings, numbers, booleans, nil.
	Set(ctx context.Context, path []string, value any) error

	// Delete removes the entry at path.
	// Returns nil when no entry exists there.
	Delete(ctx context.Context, path []string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for driver operations.
var (
	// ErrNotFound indicates no entry exists at the requested path.
	ErrNotFound = errors.New("entry not found")

	// ErrClosed indicates the driver has been closed.
	ErrClosed = errors.New("driver closed")

	// ErrEmptyPath indicates an operation was attempted with no path segments.
	ErrEmptyPath = errors.New("path must have at least one segment")
)
