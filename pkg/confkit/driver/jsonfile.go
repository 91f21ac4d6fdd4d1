package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// JSONFile persists the document as a single JSON file. The file is read once
// at open; every write flushes the whole document back to disk via a temp
// file and rename, so a crash mid-write never leaves a torn file behind.
//
// Numbers read back from disk follow encoding/json conventions (float64).
type JSONFile struct {
	mu     sync.RWMutex
	path   string
	doc    map[string]any
	closed bool
}

// Compile-time interface check.
var _ Driver = (*JSONFile)(nil)

// OpenJSONFile opens or creates a JSON file driver at path.
func OpenJSONFile(path string) (*JSONFile, error) {
	doc := make(map[string]any)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// First open; the file appears on first write.
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &JSONFile{path: path, doc: doc}, nil
}

// Get implements Driver.
func (j *JSONFile) Get(_ context.Context, path []string) (any, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		return nil, ErrClosed
	}

	v, ok := lookup(j.doc, path)
	if !ok {
		return nil, ErrNotFound
	}
	return copyValue(v), nil
}

// Set implements Driver.
func (j *JSONFile) Set(_ context.Context, path []string, value any) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrClosed
	}

	put(j.doc, path, copyValue(value))
	return j.flush()
}

// Delete implements Driver.
func (j *JSONFile) Delete(_ context.Context, path []string) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrClosed
	}

	remove(j.doc, path)
	return j.flush()
}

// Close implements Driver.
func (j *JSONFile) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.closed = true
	j.doc = nil
	return nil
}

// flush writes the document to disk atomically. Callers must hold the lock.
func (j *JSONFile) flush() error {
	data, err := json.MarshalIndent(j.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(j.path),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(j.path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", j.path, err)
	}
	return nil
}
