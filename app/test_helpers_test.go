package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gek-social/gek/domain"
)

// memStore is an in-memory RegistryStore and SessionStore. Errors can be
// injected to exercise the degraded paths.
type memStore struct {
	users     []domain.User
	active    *domain.User
	loadErr   error
	saveErr   error
	saveCalls int
}

func (m *memStore) LoadUsers() ([]domain.User, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.User{}, m.users...), nil
}

func (m *memStore) SaveUsers(users []domain.User) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.users = append([]domain.User{}, users...)
	return nil
}

func (m *memStore) LoadActiveUser() (domain.User, bool, error) {
	if m.loadErr != nil {
		return domain.User{}, false, m.loadErr
	}
	if m.active == nil {
		return domain.User{}, false, nil
	}
	return *m.active, true, nil
}

func (m *memStore) SaveActiveUser(user domain.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.active = &user
	return nil
}

func (m *memStore) ClearActiveUser() error {
	m.active = nil
	return nil
}

// stubAssistant returns canned results or errors for suggestion tests.
type stubAssistant struct {
	caption     string
	captionErr  error
	places      []string
	placesErr   error
	placesCalls int
}

func (s *stubAssistant) GenerateCaption(context.Context, string, string) (string, error) {
	return s.caption, s.captionErr
}

func (s *stubAssistant) SearchPlaces(context.Context, string) ([]string, error) {
	s.placesCalls++
	return s.places, s.placesErr
}

var errBroken = errors.New("broken")

func makeUser(id, username string) domain.User {
	return domain.User{
		ID:       id,
		Username: username,
		FullName: "User " + username,
		Avatar:   domain.AvatarURI(username),
		Banner:   domain.BannerURI(username),
	}
}

func newTestRegistry(store *memStore) *Registry {
	return NewRegistry(store, zap.NewNop())
}

func newTestSession(store *memStore) (*Session, *Registry) {
	registry := newTestRegistry(store)
	session := NewSession(registry, store, zap.NewNop())
	return session, registry
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
