package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// TransportError reports a failure before any HTTP response was obtained
// (dial, DNS, connection reset). The underlying cause is preserved for Unwrap.
type TransportError struct {
	Op  string // "GET /api/customers"
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying transport failure.
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-success HTTP response. Message carries the
// server-provided detail when the body contained one, otherwise the HTTP
// status text. Backend validation failures surface here as well.
type StatusError struct {
	Op      string
	URL     string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// IsNotFound reports whether err is a StatusError carrying HTTP 404, the
// backend's signal that the requested entity does not exist.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// serverMessage extracts a human-readable message from an error response
// body. The backend is FastAPI-shaped and uses "detail"; "message" and
// "error" cover other conventions seen in the wild.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if len(envelope.Detail) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Detail, &s); err == nil {
			return s
		}
		// Structured validation detail; return it verbatim.
		return string(envelope.Detail)
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
