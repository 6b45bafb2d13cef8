package app

import (
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/gek-social/gek/domain"
)

// RegistryStore persists the user registry between runs.
type RegistryStore interface {
	LoadUsers() ([]domain.User, error)
	SaveUsers(users []domain.User) error
}

// Registry is the directory of all known users, keyed by username.
// Usernames are unique case-insensitively.
type Registry struct {
	store RegistryStore
	log   *zap.Logger
	users []domain.User
}

// NewRegistry rehydrates the registry from storage. A missing or unreadable
// snapshot is logged and treated as an empty registry.
func NewRegistry(store RegistryStore, log *zap.Logger) *Registry {
	r := &Registry{store: store, log: log}
	users, err := store.LoadUsers()
	if err != nil {
		log.Warn("registry: could not load saved users, starting empty", zap.Error(err))
		return r
	}
	r.users = users
	return r
}

// FindByUsername looks up a user by case-insensitive exact username match.
func (r *Registry) FindByUsername(name string) (domain.User, bool) {
	name = strings.TrimSpace(name)
	return lo.Find(r.users, func(u domain.User) bool {
		return strings.EqualFold(u.Username, name)
	})
}

// Upsert inserts the user if its id is unseen, otherwise replaces the record
// with the matching id. Full replacement, no merging. The registry is
// persisted after every upsert.
func (r *Registry) Upsert(user domain.User) {
	_, idx, found := lo.FindIndexOf(r.users, func(u domain.User) bool {
		return u.ID == user.ID
	})
	if found {
		r.users[idx] = user
	} else {
		r.users = append(r.users, user)
	}
	if err := r.store.SaveUsers(r.users); err != nil {
		r.log.Warn("registry: could not persist users", zap.Error(err))
	}
}

// All returns a snapshot of every known user, used for the unfiltered
// search listing.
func (r *Registry) All() []domain.User {
	return append([]domain.User{}, r.users...)
}

// Search returns users whose username or full name contains the query,
// case-insensitively. An empty query returns everyone.
func (r *Registry) Search(query string) []domain.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.All()
	}
	return lo.Filter(r.users, func(u domain.User, _ int) bool {
		return strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.FullName), q)
	})
}

// Len reports how many users the registry knows about.
func (r *Registry) Len() int {
	return len(r.users)
}
