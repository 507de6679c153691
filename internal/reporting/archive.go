package reporting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"salesdesk/internal/blob"
)

// Archive persists generated reports to the blob store so they outlive the
// session that produced them.
type Archive struct {
	store blob.Store
	nowFn func() time.Time
}

// NewArchive constructs an archive over the given store.
func NewArchive(store blob.Store) *Archive {
	return &Archive{
		store: store,
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// Save writes the report as JSON under reports/<type>/<timestamp>-<id>.json
// and returns the stored object's metadata.
func (a *Archive) Save(ctx context.Context, reportType string, report Generated) (blob.Info, error) {
	if reportType == "" {
		return blob.Info{}, fmt.Errorf("report type required")
	}
	encoded, err := json.Marshal(report)
	if err != nil {
		return blob.Info{}, fmt.Errorf("encode report: %w", err)
	}
	key := fmt.Sprintf("reports/%s/%s-%s.json", reportType, a.nowFn().Format("20060102T150405Z"), uuid.NewString()[:8])
	info, err := a.store.Put(ctx, key, bytes.NewReader(encoded), "application/json")
	if err != nil {
		return blob.Info{}, fmt.Errorf("archive report: %w", err)
	}
	return info, nil
}

// Load reads one archived report back by key.
func (a *Archive) Load(ctx context.Context, key string) (Generated, error) {
	_, rc, err := a.store.Get(ctx, key)
	if err != nil {
		return Generated{}, err
	}
	defer func() { _ = rc.Close() }()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return Generated{}, err
	}
	var out Generated
	if err := json.Unmarshal(raw, &out); err != nil {
		return Generated{}, fmt.Errorf("decode archived report: %w", err)
	}
	return out, nil
}

// List returns archived report objects for one type, or all types when
// reportType is empty.
func (a *Archive) List(ctx context.Context, reportType string) ([]blob.Info, error) {
	prefix := "reports/"
	if reportType != "" {
		prefix += reportType + "/"
	}
	return a.store.List(ctx, prefix)
}
