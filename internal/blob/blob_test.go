package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func testStoreBasics(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	info, err := s.Put(ctx, "reports/sales/one.json", strings.NewReader(`{"period":"month"}`), "application/json")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "reports/sales/one.json" || info.Size == 0 {
		t.Fatalf("unexpected info %+v", info)
	}

	got, rc, err := s.Get(ctx, "reports/sales/one.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != `{"period":"month"}` {
		t.Fatalf("unexpected body %s", body)
	}
	if got.ContentType != "application/json" {
		t.Fatalf("content type lost: %+v", got)
	}

	// Overwrite in place.
	if _, err := s.Put(ctx, "reports/sales/one.json", strings.NewReader(`{"period":"week"}`), "application/json"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	_, rc, err = s.Get(ctx, "reports/sales/one.json")
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	body, _ = io.ReadAll(rc)
	rc.Close()
	if string(body) != `{"period":"week"}` {
		t.Fatalf("overwrite not applied: %s", body)
	}

	// List with prefix.
	if _, err := s.Put(ctx, "reports/inventory/two.json", strings.NewReader(`{}`), "application/json"); err != nil {
		t.Fatalf("put second: %v", err)
	}
	infos, err := s.List(ctx, "reports/sales/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 || infos[0].Key != "reports/sales/one.json" {
		t.Fatalf("unexpected listing %+v", infos)
	}
	infos, err = s.List(ctx, "reports/")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(infos))
	}

	// Delete reports existence.
	existed, err := s.Delete(ctx, "reports/sales/one.json")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !existed {
		t.Fatalf("delete should report the object existed")
	}
	if _, _, err := s.Get(ctx, "reports/sales/one.json"); err == nil {
		t.Fatalf("get after delete should fail")
	}
}

func TestMemoryStore(t *testing.T) {
	testStoreBasics(t, NewMemory())
}

func TestMemoryDeleteMissing(t *testing.T) {
	existed, err := NewMemory().Delete(context.Background(), "nope")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if existed {
		t.Fatalf("missing object should report existed=false")
	}
}

func TestFilesystemStore(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	testStoreBasics(t, s)
}

func TestFilesystemDeleteMissing(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	existed, err := s.Delete(context.Background(), "reports/none.json")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if existed {
		t.Fatalf("missing object should report existed=false")
	}
}

func TestFilesystemRejectsBadKeys(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"", "  ", "../escape", "a/../../b", "/absolute"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), ""); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}
}

func TestFilesystemSignedURLUnsupported(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	if _, err := s.SignedURL(context.Background(), "k", time.Minute); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestNewS3RequiresBucket(t *testing.T) {
	if _, err := NewS3(context.Background(), S3Config{}); err == nil {
		t.Fatalf("expected error for missing bucket")
	}
}

func TestOpenS3FromEnvRequiresBucket(t *testing.T) {
	t.Setenv("SALESDESK_BLOB_S3_BUCKET", "")
	if _, err := OpenS3FromEnv(context.Background()); err == nil {
		t.Fatalf("expected error for missing bucket env")
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	t.Setenv("SALESDESK_BLOB_DRIVER", "memory")
	s, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Driver() != DriverMemory {
		t.Fatalf("expected memory driver, got %s", s.Driver())
	}
}

func TestOpenDefaultsToFilesystem(t *testing.T) {
	t.Setenv("SALESDESK_BLOB_DRIVER", "")
	t.Setenv("SALESDESK_BLOB_FS_ROOT", t.TempDir())
	s, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Driver() != DriverFilesystem {
		t.Fatalf("expected fs driver, got %s", s.Driver())
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Setenv("SALESDESK_BLOB_DRIVER", "gcs")
	if _, err := Open(context.Background()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
