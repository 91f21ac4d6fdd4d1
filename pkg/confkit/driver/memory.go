package driver

import (
	"context"
	"sync"
)

// Memory is an in-memory driver for testing and ephemeral stores.
// Data is lost when the process exits.
type Memory struct {
	mu     sync.RWMutex
	doc    map[string]any
	closed bool
}

// Compile-time interface check.
var _ Driver = (*Memory)(nil)

// NewMemory creates a new in-memory driver.
func NewMemory() *Memory {
	return &Memory{doc: make(map[string]any)}
}

// Get implements Driver.
func (m *Memory) Get(_ context.Context, path []string) (any, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	v, ok := lookup(m.doc, path)
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent modification of stored state.
	return copyValue(v), nil
}

// Set implements Driver.
func (m *Memory) Set(_ context.Context, path []string, value any) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	put(m.doc, path, copyValue(value))
	return nil
}

// Delete implements Driver.
func (m *Memory) Delete(_ context.Context, path []string) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	remove(m.doc, path)
	return nil
}

// Close implements Driver.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.doc = nil
	return nil
}

// Len returns the number of top-level entries in the document.
// Useful for testing.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.doc)
}
