package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testStoreRoundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, _, err := s.Load(ctx, "customers"); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot before first save, got %v", err)
	}

	first := []byte(`[{"id":1}]`)
	if err := s.Save(ctx, "customers", first); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload, savedAt, err := s.Load(ctx, "customers")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(payload, first) {
		t.Fatalf("payload mismatch: %s", payload)
	}
	if savedAt.IsZero() || time.Since(savedAt) > time.Minute {
		t.Fatalf("implausible saved_at %v", savedAt)
	}

	// Second save for the same kind replaces, never appends.
	second := []byte(`[{"id":1},{"id":2}]`)
	if err := s.Save(ctx, "customers", second); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	payload, _, err = s.Load(ctx, "customers")
	if err != nil {
		t.Fatalf("re-load: %v", err)
	}
	if !bytes.Equal(payload, second) {
		t.Fatalf("upsert did not replace: %s", payload)
	}

	// Kinds are independent.
	if _, _, err := s.Load(ctx, "orders"); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("other kind should have no snapshot, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	testStoreRoundTrip(t, s)
}

func TestMemoryStoreCopiesPayload(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	ctx := context.Background()

	payload := []byte(`[{"id":1}]`)
	if err := s.Save(ctx, "customers", payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload[0] = 'X'
	got, _, err := s.Load(ctx, "customers")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got[0] != '[' {
		t.Fatalf("stored payload aliased the caller's slice")
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	testStoreRoundTrip(t, s)
}

func TestSQLiteStoreCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "snapshots.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	if err := s.Save(context.Background(), "products", []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	ctx := context.Background()

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := s.Save(ctx, "orders", []byte(`[{"id":9}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer s2.Close()
	payload, _, err := s2.Load(ctx, "orders")
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if !bytes.Equal(payload, []byte(`[{"id":9}]`)) {
		t.Fatalf("payload lost across reopen: %s", payload)
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("SALESDESK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SALESDESK_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	s, err := NewPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer s.Close()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		t.Fatalf("reset snapshots table: %v", err)
	}
	testStoreRoundTrip(t, s)
}

func TestOpenSelectsDriver(t *testing.T) {
	t.Setenv("SALESDESK_CACHE_DRIVER", "memory")
	s, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*Memory); !ok {
		t.Fatalf("expected memory driver, got %T", s)
	}
}

func TestOpenDefaultsToSQLite(t *testing.T) {
	t.Setenv("SALESDESK_CACHE_DRIVER", "")
	t.Setenv("SALESDESK_SQLITE_PATH", filepath.Join(t.TempDir(), "snapshots.db"))
	s, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLite); !ok {
		t.Fatalf("expected sqlite driver, got %T", s)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Setenv("SALESDESK_CACHE_DRIVER", "etcd")
	if _, err := Open(context.Background()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
