package driver

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// defaultBusyTimeout bounds how long SQLite waits on a locked database.
const defaultBusyTimeout = 5 * time.Second

// SQLite persists the document in a SQLite database. The document lives in a
// single row and is rewritten as JSON on every mutation, which keeps the
// driver's path semantics identical to the other backends. It is suitable for
// single-process production use.
type SQLite struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// Compile-time interface check.
var _ Driver = (*SQLite)(nil)

// OpenSQLite opens or creates a SQLite driver at path.
// The path should be a file path (e.g. "./settings.db") or ":memory:" for
// testing. A non-positive busyTimeout falls back to the default.
func OpenSQLite(path string, busyTimeout time.Duration) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if busyTimeout <= 0 {
		busyTimeout = defaultBusyTimeout
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			doc BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Get implements Driver.
func (s *SQLite) Get(ctx context.Context, path []string) (any, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	doc, err := s.loadDoc(ctx)
	if err != nil {
		return nil, err
	}

	v, ok := lookup(doc, path)
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Set implements Driver.
func (s *SQLite) Set(ctx context.Context, path []string, value any) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	doc, err := s.loadDoc(ctx)
	if err != nil {
		return err
	}
	put(doc, path, value)
	return s.saveDoc(ctx, doc)
}

// Delete implements Driver.
func (s *SQLite) Delete(ctx context.Context, path []string) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	doc, err := s.loadDoc(ctx)
	if err != nil {
		return err
	}
	remove(doc, path)
	return s.saveDoc(ctx, doc)
}

// Close implements Driver.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// loadDoc reads and decodes the document row. Callers must hold the lock.
func (s *SQLite) loadDoc(ctx context.Context) (map[string]any, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM documents WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	doc := make(map[string]any)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// saveDoc encodes and upserts the document row. Callers must hold the lock.
func (s *SQLite) saveDoc(ctx context.Context, doc map[string]any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, doc) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc
	`, data)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}
