package cache

import (
	"context"
	"sync"
	"time"
)

type memSnapshot struct {
	payload []byte
	savedAt time.Time
}

// Memory implements Store in process memory.
type Memory struct {
	mu    sync.RWMutex
	snaps map[string]memSnapshot
}

// NewMemory returns an in-memory snapshot store.
func NewMemory() *Memory { return &Memory{snaps: make(map[string]memSnapshot)} }

// Save stores a copy of the payload for the kind.
func (s *Memory) Save(_ context.Context, kind string, payload []byte) error {
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.mu.Lock()
	s.snaps[kind] = memSnapshot{payload: cp, savedAt: time.Now().UTC()}
	s.mu.Unlock()
	return nil
}

// Load returns a copy of the stored payload.
func (s *Memory) Load(_ context.Context, kind string) ([]byte, time.Time, error) {
	s.mu.RLock()
	snap, ok := s.snaps[kind]
	s.mu.RUnlock()
	if !ok {
		return nil, time.Time{}, ErrNoSnapshot
	}
	cp := make([]byte, len(snap.payload))
	copy(cp, snap.payload)
	return cp, snap.savedAt, nil
}

// Close is a no-op for the memory driver.
func (s *Memory) Close() error { return nil }
