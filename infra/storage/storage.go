// Package storage persists the user registry and active session as JSON
// files under the application data directory. Each logical key maps to one
// file; values are plain JSON.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gek-social/gek/domain"
)

const (
	registryKey = "identity_registry"
	sessionKey  = "active_session"
)

// Store is a small file-backed key-value store.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// LoadUsers reads the persisted registry. A missing file is not an error;
// it yields an empty registry.
func (s *Store) LoadUsers() ([]domain.User, error) {
	data, err := os.ReadFile(s.path(registryKey))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", registryKey, err)
	}
	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", registryKey, err)
	}
	return users, nil
}

// SaveUsers writes the full registry snapshot.
func (s *Store) SaveUsers(users []domain.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", registryKey, err)
	}
	if err := os.WriteFile(s.path(registryKey), data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", registryKey, err)
	}
	return nil
}

// LoadActiveUser reads the persisted session identity. The second return is
// false when no session is stored.
func (s *Store) LoadActiveUser() (domain.User, bool, error) {
	data, err := os.ReadFile(s.path(sessionKey))
	if errors.Is(err, os.ErrNotExist) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("reading %s: %w", sessionKey, err)
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return domain.User{}, false, fmt.Errorf("parsing %s: %w", sessionKey, err)
	}
	return user, true, nil
}

// SaveActiveUser writes the session identity.
func (s *Store) SaveActiveUser(user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", sessionKey, err)
	}
	if err := os.WriteFile(s.path(sessionKey), data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", sessionKey, err)
	}
	return nil
}

// ClearActiveUser removes the stored session identity, if any.
func (s *Store) ClearActiveUser() error {
	err := os.Remove(s.path(sessionKey))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", sessionKey, err)
	}
	return nil
}

// HasActiveUser reports whether a session identity is currently stored.
func (s *Store) HasActiveUser() bool {
	_, err := os.Stat(s.path(sessionKey))
	return err == nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
