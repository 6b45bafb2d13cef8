package app

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gek-social/gek/domain"
)

const defaultBio = "Digital explorer. 📸"

// SessionStore persists the active identity separately from the registry so
// a returning visitor's last session can be restored without a new login.
type SessionStore interface {
	LoadActiveUser() (domain.User, bool, error)
	SaveActiveUser(user domain.User) error
	ClearActiveUser() error
}

// ProfileUpdate carries the editable profile fields. Empty fields other than
// Bio are left unchanged.
type ProfileUpdate struct {
	FullName string
	Bio      string
	Avatar   string
	Banner   string
}

// Session holds the single authenticated identity driving all mutating
// actions in the current run.
type Session struct {
	registry *Registry
	store    SessionStore
	log      *zap.Logger
	now      func() time.Time
	active   *domain.User
}

func NewSession(registry *Registry, store SessionStore, log *zap.Logger) *Session {
	return &Session{
		registry: registry,
		store:    store,
		log:      log,
		now:      time.Now,
	}
}

// Login resolves the username against the registry, creating the user on
// first login. The new user's id is the creation-time timestamp and the
// avatar/banner are derived deterministically from the username. Either path
// makes the user the active identity and persists it.
func (s *Session) Login(username string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, domain.ErrEmptyUsername
	}

	user, ok := s.registry.FindByUsername(username)
	if !ok {
		user = domain.User{
			ID:       strconv.FormatInt(s.now().UnixMilli(), 10),
			Username: username,
			FullName: username,
			Avatar:   domain.AvatarURI(username),
			Banner:   domain.BannerURI(username),
			Bio:      defaultBio,
		}
		s.registry.Upsert(user)
	}

	s.active = &user
	if err := s.store.SaveActiveUser(user); err != nil {
		s.log.Warn("session: could not persist active user", zap.Error(err))
	}
	return user, nil
}

// Restore resumes the last persisted session, if any. Storage failures are
// logged and treated as "no saved session".
func (s *Session) Restore() (domain.User, bool) {
	user, ok, err := s.store.LoadActiveUser()
	if err != nil {
		s.log.Warn("session: could not restore saved session", zap.Error(err))
		return domain.User{}, false
	}
	if !ok {
		return domain.User{}, false
	}
	s.active = &user
	return user, true
}

// Logout clears the active identity in memory and in storage. Session-scoped
// state held elsewhere (notification log, UI navigation) is the caller's
// responsibility to reset.
func (s *Session) Logout() {
	s.active = nil
	if err := s.store.ClearActiveUser(); err != nil {
		s.log.Warn("session: could not clear persisted session", zap.Error(err))
	}
}

// Active returns the current identity, if logged in.
func (s *Session) Active() (domain.User, bool) {
	if s.active == nil {
		return domain.User{}, false
	}
	return *s.active, true
}

// LoggedIn reports whether there is an active identity.
func (s *Session) LoggedIn() bool {
	return s.active != nil
}

// UpdateProfile mutates the active identity and upserts it into the registry
// so future lookups see the change. Author snapshots embedded in existing
// posts are intentionally not touched.
func (s *Session) UpdateProfile(upd ProfileUpdate) (domain.User, bool) {
	if s.active == nil {
		return domain.User{}, false
	}
	user := *s.active
	if v := strings.TrimSpace(upd.FullName); v != "" {
		user.FullName = v
	}
	user.Bio = strings.TrimSpace(upd.Bio)
	if v := strings.TrimSpace(upd.Avatar); v != "" {
		user.Avatar = v
	}
	if v := strings.TrimSpace(upd.Banner); v != "" {
		user.Banner = v
	}

	s.active = &user
	if err := s.store.SaveActiveUser(user); err != nil {
		s.log.Warn("session: could not persist profile update", zap.Error(err))
	}
	s.registry.Upsert(user)
	return user, true
}
