package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Postgres persists snapshots to a PostgreSQL server, for deployments where
// several operators share one last-known view.
type Postgres struct {
	db *sql.DB
}

// Compile-time contract assertion.
var _ Store = (*Postgres)(nil)

const defaultPostgresDSN = "postgres://localhost/salesdesk?sslmode=disable"

// NewPostgres opens a postgres-backed snapshot store using the provided DSN
// (falls back to a localhost default) and ensures the snapshot table exists.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS snapshots (
		kind TEXT PRIMARY KEY,
		payload BYTEA NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Save upserts the snapshot for the kind.
func (s *Postgres) Save(ctx context.Context, kind string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO snapshots (kind, payload, saved_at) VALUES ($1, $2, $3)
		ON CONFLICT (kind) DO UPDATE SET payload = EXCLUDED.payload, saved_at = EXCLUDED.saved_at`,
		kind, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", kind, err)
	}
	return nil
}

// Load reads the snapshot for the kind.
func (s *Postgres) Load(ctx context.Context, kind string) ([]byte, time.Time, error) {
	var payload []byte
	var savedAt time.Time
	err := s.db.QueryRowContext(ctx, `SELECT payload, saved_at FROM snapshots WHERE kind = $1`, kind).
		Scan(&payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load snapshot %s: %w", kind, err)
	}
	return payload, savedAt.UTC(), nil
}

// Close releases the database handle.
func (s *Postgres) Close() error { return s.db.Close() }
