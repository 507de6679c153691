package view

import (
	"context"
	"fmt"
	"sync"

	"salesdesk/internal/store"
)

// FormPayloads is satisfied by form models that can produce both a create
// and an update payload from their current field values.
type FormPayloads[C any, U any] interface {
	CreatePayload() C
	UpdatePayload(id int64) U
}

// Modal drives the add/edit dialog for one collection. Opening it blank
// means create mode; opening it with an entity means edit mode. Submit routes
// to the matching store verb, closes on success and stays open on failure so
// the operator can correct and retry.
type Modal[E store.Keyed, C any, U store.Payload] struct {
	kind     string
	col      *store.Collection[E, C, U]
	feedback *Notifier

	mu      sync.Mutex
	open    bool
	editing *E
}

// NewModal constructs a closed modal over the collection. kind names the
// entity in feedback messages ("customer").
func NewModal[E store.Keyed, C any, U store.Payload](kind string, col *store.Collection[E, C, U], feedback *Notifier) *Modal[E, C, U] {
	return &Modal[E, C, U]{kind: kind, col: col, feedback: feedback}
}

// OpenBlank opens the modal in create mode.
func (m *Modal[E, C, U]) OpenBlank() {
	m.mu.Lock()
	m.open = true
	m.editing = nil
	m.mu.Unlock()
}

// OpenEdit opens the modal pre-populated from the entity.
func (m *Modal[E, C, U]) OpenEdit(entity E) {
	m.mu.Lock()
	m.open = true
	m.editing = &entity
	m.mu.Unlock()
}

// Close dismisses the modal without submitting.
func (m *Modal[E, C, U]) Close() {
	m.mu.Lock()
	m.open = false
	m.editing = nil
	m.mu.Unlock()
}

// IsOpen reports whether the modal is showing.
func (m *Modal[E, C, U]) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Editing returns the entity being edited, or ok=false in create mode.
func (m *Modal[E, C, U]) Editing() (E, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.editing == nil {
		var zero E
		return zero, false
	}
	return *m.editing, true
}

// Submit dispatches create or update depending on the mode the modal was
// opened in. On success the modal closes and a success message is shown; on
// failure the modal stays open and the failure is shown, with the error also
// returned to the caller.
func (m *Modal[E, C, U]) Submit(ctx context.Context, form FormPayloads[C, U]) error {
	m.mu.Lock()
	editing := m.editing
	m.mu.Unlock()

	var err error
	if editing != nil {
		_, err = m.col.Update(ctx, form.UpdatePayload((*editing).Key()))
	} else {
		_, err = m.col.Create(ctx, form.CreatePayload())
	}
	if err != nil {
		m.feedback.Error(fmt.Sprintf("Error saving %s", m.kind))
		return err
	}

	verb := "created"
	if editing != nil {
		verb = "updated"
	}
	m.feedback.Success(fmt.Sprintf("%s %s successfully", titleCase(m.kind), verb))
	m.Close()
	return nil
}

// Delete removes the entity immediately (no confirmation step) and shows the
// outcome as feedback.
func (m *Modal[E, C, U]) Delete(ctx context.Context, id int64) error {
	if err := m.col.Delete(ctx, id); err != nil {
		m.feedback.Error(fmt.Sprintf("Error deleting %s", m.kind))
		return err
	}
	m.feedback.Success(fmt.Sprintf("%s deleted successfully", titleCase(m.kind)))
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
