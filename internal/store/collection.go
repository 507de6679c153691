// Package store holds the canonical client-side view of each entity
// collection. A Collection reconciles remote CRUD outcomes into an ordered
// in-memory list plus selected/loading/error state; it never mutates
// optimistically — the list changes only after the remote call resolves.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"salesdesk/internal/rest"
)

// Keyed is satisfied by entities with a numeric identity.
type Keyed interface {
	Key() int64
}

// Payload is satisfied by update payloads carrying their target id.
type Payload interface {
	PayloadID() int64
}

// Accessor is the remote surface a Collection reconciles against. Implemented
// by rest.Resource.
type Accessor[E Keyed, C any, U Payload] interface {
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id int64) (E, error)
	Create(ctx context.Context, payload C) (E, error)
	Update(ctx context.Context, payload U) (E, error)
	Delete(ctx context.Context, id int64) error
}

// Snapshot is a copy of a Collection's state safe to render from.
type Snapshot[E Keyed] struct {
	Entities []E
	Selected *E
	Loading  bool
	Err      string
}

// Collection is the client-side cache of one entity kind. State mutations are
// serialized by the mutex; overlapping verbs are neither queued nor
// deduplicated, so when two in-flight calls race the last one to resolve wins.
type Collection[E Keyed, C any, U Payload] struct {
	kind   string // singular, for log context
	plural string // for fallback error messages
	remote Accessor[E, C, U]
	log    *slog.Logger

	mu       sync.Mutex
	entities []E
	selected *E
	loading  bool
	errMsg   string
}

// Option configures a Collection.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the collection's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewCollection constructs an empty collection for one entity kind. kind and
// plural name the entity in logs and fallback error messages
// ("customer", "customers").
func NewCollection[E Keyed, C any, U Payload](kind, plural string, remote Accessor[E, C, U], opts ...Option) *Collection[E, C, U] {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection[E, C, U]{
		kind:   kind,
		plural: plural,
		remote: remote,
		log:    o.log.With("collection", kind),
	}
}

// Snapshot returns a copy of the current state.
func (c *Collection[E, C, U]) Snapshot() Snapshot[E] {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := Snapshot[E]{
		Entities: append([]E(nil), c.entities...),
		Loading:  c.loading,
		Err:      c.errMsg,
	}
	if c.selected != nil {
		sel := *c.selected
		out.Selected = &sel
	}
	return out
}

// FetchAll replaces the list wholesale with the server's response, preserving
// server order. On failure the list is left as it was and the failure message
// is recorded on the collection; loading is false once the call settles either
// way. The error is also returned for callers that want it, but the recorded
// message is the source of truth for views.
func (c *Collection[E, C, U]) FetchAll(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	entities, err := c.remote.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.errMsg = failureMessage("fetch", c.plural, err)
		return err
	}
	c.entities = entities
	return nil
}

// FetchByID loads one entity into the selected slot. The list and loading
// flag are untouched; a failure is returned to the caller and not recorded.
func (c *Collection[E, C, U]) FetchByID(ctx context.Context, id int64) (E, error) {
	entity, err := c.remote.Get(ctx, id)
	if err != nil {
		var zero E
		return zero, err
	}
	c.mu.Lock()
	c.selected = &entity
	c.mu.Unlock()
	return entity, nil
}

// Create posts the payload and appends the server-assigned entity to the end
// of the list. On failure the state is untouched and the error is returned so
// the initiating view can show its own feedback; the collection's error field
// is reserved for fetch failures.
func (c *Collection[E, C, U]) Create(ctx context.Context, payload C) (E, error) {
	entity, err := c.remote.Create(ctx, payload)
	if err != nil {
		var zero E
		return zero, err
	}
	c.mu.Lock()
	c.entities = append(c.entities, entity)
	c.mu.Unlock()
	return entity, nil
}

// Update puts the payload and replaces the first entry whose id matches the
// returned entity. When no entry matches, nothing is inserted. A selected
// entity with the same id is refreshed.
func (c *Collection[E, C, U]) Update(ctx context.Context, payload U) (E, error) {
	entity, err := c.remote.Update(ctx, payload)
	if err != nil {
		var zero E
		return zero, err
	}
	c.mu.Lock()
	for i := range c.entities {
		if c.entities[i].Key() == entity.Key() {
			c.entities[i] = entity
			break
		}
	}
	if c.selected != nil && (*c.selected).Key() == entity.Key() {
		sel := entity
		c.selected = &sel
	}
	c.mu.Unlock()
	return entity, nil
}

// Delete removes the entity server-side, then drops every local entry with
// that id (expected exactly one) and clears the selected slot if it pointed
// at it. An id absent locally is not an error here; the backend's 404 is the
// backend's concern and is returned as-is.
func (c *Collection[E, C, U]) Delete(ctx context.Context, id int64) error {
	if err := c.remote.Delete(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	kept := c.entities[:0]
	for _, e := range c.entities {
		if e.Key() != id {
			kept = append(kept, e)
		}
	}
	c.entities = kept
	if c.selected != nil && (*c.selected).Key() == id {
		c.selected = nil
	}
	c.mu.Unlock()
	return nil
}

// Select sets or clears the selected entity without a round trip, mirroring
// row selection in a view.
func (c *Collection[E, C, U]) Select(entity *E) {
	c.mu.Lock()
	if entity == nil {
		c.selected = nil
	} else {
		sel := *entity
		c.selected = &sel
	}
	c.mu.Unlock()
}

// ClearError resets the recorded fetch failure.
func (c *Collection[E, C, U]) ClearError() {
	c.mu.Lock()
	c.errMsg = ""
	c.mu.Unlock()
}

// Replace installs entities directly, bypassing the remote accessor. Used to
// hydrate from a local snapshot cache before the first fetch.
func (c *Collection[E, C, U]) Replace(entities []E) {
	c.mu.Lock()
	c.entities = append([]E(nil), entities...)
	c.mu.Unlock()
}

// failureMessage prefers the server-provided message and falls back to a
// generic "failed to <verb> <plural>" string.
func failureMessage(verb, plural string, err error) string {
	var se *rest.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fmt.Sprintf("failed to %s %s", verb, plural)
}
