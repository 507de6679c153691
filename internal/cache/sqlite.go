package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLite persists snapshots to a single table as blobs.
type SQLite struct {
	db   *sql.DB
	path string
}

// Compile-time contract assertion.
var _ Store = (*SQLite)(nil)

// NewSQLite opens (or creates) the snapshot database at path.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = "salesdesk.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		kind TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		saved_at TEXT NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Save upserts the snapshot for the kind.
func (s *SQLite) Save(ctx context.Context, kind string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO snapshots (kind, payload, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		kind, payload, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", kind, err)
	}
	return nil
}

// Load reads the snapshot for the kind.
func (s *SQLite) Load(ctx context.Context, kind string) ([]byte, time.Time, error) {
	var payload []byte
	var savedAt string
	err := s.db.QueryRowContext(ctx, `SELECT payload, saved_at FROM snapshots WHERE kind = ?`, kind).
		Scan(&payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load snapshot %s: %w", kind, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse snapshot time: %w", err)
	}
	return payload, ts, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }
