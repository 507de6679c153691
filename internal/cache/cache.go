// Package cache persists per-kind snapshots of the collection stores so the
// console can show last-known data before the first fetch (or offline).
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// Driver identifies a concrete snapshot backend implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory only (tests / ephemeral)
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file (default)
	DriverPostgres Driver = "postgres" // PostgreSQL server (shared deployments)
)

// ErrNoSnapshot is returned by Load when no snapshot exists for the kind.
var ErrNoSnapshot = errors.New("cache: no snapshot")

// Store persists one opaque payload per entity kind.
type Store interface {
	Save(ctx context.Context, kind string, payload []byte) error
	Load(ctx context.Context, kind string) (payload []byte, savedAt time.Time, err error)
	Close() error
}

// Open selects a backend using environment variables. Defaults to sqlite
// when unset.
//
//	SALESDESK_CACHE_DRIVER: memory|sqlite|postgres (default sqlite)
//	SALESDESK_SQLITE_PATH: path to sqlite file (default ./salesdesk.db)
//	SALESDESK_POSTGRES_DSN: postgres DSN when driver=postgres
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("SALESDESK_CACHE_DRIVER")
	if driver == "" {
		driver = string(DriverSQLite)
	}
	switch Driver(driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return NewSQLite(os.Getenv("SALESDESK_SQLITE_PATH"))
	case DriverPostgres:
		return NewPostgres(ctx, os.Getenv("SALESDESK_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown cache driver %s", driver)
	}
}
