package rest

import (
	"context"
	"net/http"
)

// Updatable is satisfied by update payloads, which carry the id of the
// entity they target.
type Updatable interface {
	PayloadID() int64
}

// Resource binds a Client to one collection endpoint, parameterized by the
// entity type E, the create payload C and the update payload U. It is the
// sole component that issues network calls for its entity kind.
type Resource[E any, C any, U Updatable] struct {
	client *Client
	path   string // "/api/customers"
}

// NewResource constructs a resource for the collection mounted at path.
func NewResource[E any, C any, U Updatable](client *Client, path string) *Resource[E, C, U] {
	return &Resource[E, C, U]{client: client, path: path}
}

// List reads the full collection in server order.
func (r *Resource[E, C, U]) List(ctx context.Context) ([]E, error) {
	var out []E
	if err := r.client.Do(ctx, http.MethodGet, r.path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get reads one entity by id. Absence surfaces as a StatusError matched by
// IsNotFound.
func (r *Resource[E, C, U]) Get(ctx context.Context, id int64) (E, error) {
	var out E
	if err := r.client.Do(ctx, http.MethodGet, joinID(r.path, id), nil, nil, &out); err != nil {
		var zero E
		return zero, err
	}
	return out, nil
}

// Create posts a new entity and returns the server-assigned record including
// generated id and timestamps.
func (r *Resource[E, C, U]) Create(ctx context.Context, payload C) (E, error) {
	var out E
	if err := r.client.Do(ctx, http.MethodPost, r.path, nil, payload, &out); err != nil {
		var zero E
		return zero, err
	}
	return out, nil
}

// Update puts a partial payload to the entity it identifies and returns the
// full updated record.
func (r *Resource[E, C, U]) Update(ctx context.Context, payload U) (E, error) {
	var out E
	if err := r.client.Do(ctx, http.MethodPut, joinID(r.path, payload.PayloadID()), nil, payload, &out); err != nil {
		var zero E
		return zero, err
	}
	return out, nil
}

// Delete removes one entity by id.
func (r *Resource[E, C, U]) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, http.MethodDelete, joinID(r.path, id), nil, nil, nil)
}
