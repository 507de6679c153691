// Package auth manages the persisted bearer token for the sales backend.
// Tokens live in a JSON credentials file under a fixed key and are re-read on
// every lookup, so a refresh written between calls is honored immediately.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the fixed key tokens are stored under in the credentials file.
const TokenKey = "accessToken"

// DefaultCredentialsFile resolves the credentials path:
// SALESDESK_CREDENTIALS_FILE when set, otherwise
// <user config dir>/salesdesk/credentials.json.
func DefaultCredentialsFile() (string, error) {
	if p := os.Getenv("SALESDESK_CREDENTIALS_FILE"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "salesdesk", "credentials.json"), nil
}

// FileStore reads and writes the credentials file. It satisfies
// rest.TokenSource.
type FileStore struct {
	path string
}

// NewFileStore constructs a store over the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Token reads the current token from disk. A missing file, unreadable
// content or empty value means no token: the caller sends an anonymous
// request.
func (s *FileStore) Token() (string, bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var creds map[string]string
	if err := json.Unmarshal(raw, &creds); err != nil {
		return "", false
	}
	token := creds[TokenKey]
	return token, token != ""
}

// SetToken persists a token, creating the file and parent directory as
// needed. Other keys in the file are preserved.
func (s *FileStore) SetToken(token string) error {
	creds := map[string]string{}
	if raw, err := os.ReadFile(s.path); err == nil {
		_ = json.Unmarshal(raw, &creds)
	}
	creds[TokenKey] = token
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	encoded, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, encoded, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// ClearToken removes the stored token while keeping the file's other keys.
func (s *FileStore) ClearToken() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var creds map[string]string
	if err := json.Unmarshal(raw, &creds); err != nil {
		return fmt.Errorf("decode credentials: %w", err)
	}
	delete(creds, TokenKey)
	encoded, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, encoded, 0o600)
}

// Expiry extracts the exp claim from a JWT without verifying its signature.
// Verification is the backend's job; this only supports warning the operator
// before a doomed call. A token with no exp claim returns the zero time.
func Expiry(token string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// Expired reports whether the token carries an exp claim in the past.
// Unparseable tokens report false; the backend will reject them anyway.
func Expired(token string, now time.Time) bool {
	exp, err := Expiry(token)
	if err != nil || exp.IsZero() {
		return false
	}
	return exp.Before(now)
}
