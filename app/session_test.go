package app

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/gek-social/gek/domain"
)

func TestLogin_CreatesUserOnFirstVisit(t *testing.T) {
	store := &memStore{}
	session, registry := newTestSession(store)
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	session.now = fixedClock(at)

	user, err := session.Login("  alice  ")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("username must be trimmed: %q", user.Username)
	}
	if user.ID != strconv.FormatInt(at.UnixMilli(), 10) {
		t.Fatalf("new user id must be the creation timestamp: %q", user.ID)
	}
	if user.Bio != defaultBio {
		t.Fatalf("new user should get the default bio: %q", user.Bio)
	}
	if user.Avatar != domain.AvatarURI("alice") || user.Banner != domain.BannerURI("alice") {
		t.Fatalf("avatar and banner must derive from the username: %#v", user)
	}
	if registry.Len() != 1 {
		t.Fatalf("first login must register the user")
	}
	if store.active == nil || store.active.Username != "alice" {
		t.Fatalf("login must persist the active user")
	}
}

func TestLogin_ReusesExistingIdentity(t *testing.T) {
	session, _ := newTestSession(&memStore{})

	first, _ := session.Login("alice")
	session.Logout()
	second, err := session.Login("Alice")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("same username must resolve to the same identity: %q vs %q", second.ID, first.ID)
	}
	if session.registry.Len() != 1 {
		t.Fatalf("case variants must not create duplicate users, got %d", session.registry.Len())
	}
}

func TestLogin_RejectsBlankUsername(t *testing.T) {
	session, _ := newTestSession(&memStore{})
	if _, err := session.Login("   "); !errors.Is(err, domain.ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
	if session.LoggedIn() {
		t.Fatalf("failed login must not activate a session")
	}
}

func TestRestore_ResumesPersistedSession(t *testing.T) {
	alice := makeUser("1", "alice")
	store := &memStore{active: &alice}
	session, _ := newTestSession(store)

	user, ok := session.Restore()
	if !ok || user.Username != "alice" {
		t.Fatalf("restore should resume the saved session: %v %#v", ok, user)
	}
	if !session.LoggedIn() {
		t.Fatalf("restore must activate the session")
	}
}

func TestRestore_TreatsErrorsAsNoSession(t *testing.T) {
	session, _ := newTestSession(&memStore{loadErr: errBroken})
	if _, ok := session.Restore(); ok {
		t.Fatalf("storage failure must restore nothing")
	}
}

func TestLogout_ClearsMemoryAndStorage(t *testing.T) {
	store := &memStore{}
	session, _ := newTestSession(store)
	session.Login("alice")

	session.Logout()
	if session.LoggedIn() {
		t.Fatalf("logout must clear the active identity")
	}
	if store.active != nil {
		t.Fatalf("logout must clear the persisted session")
	}
}

func TestUpdateProfile(t *testing.T) {
	store := &memStore{}
	session, registry := newTestSession(store)
	session.Login("alice")

	got, ok := session.UpdateProfile(ProfileUpdate{FullName: "Alice W.", Bio: ""})
	if !ok {
		t.Fatalf("update should succeed while logged in")
	}
	if got.FullName != "Alice W." {
		t.Fatalf("full name not applied: %q", got.FullName)
	}
	if got.Bio != "" {
		t.Fatalf("bio may be cleared: %q", got.Bio)
	}
	if got.Avatar != domain.AvatarURI("alice") {
		t.Fatalf("blank avatar field must leave the avatar unchanged")
	}

	stored, _ := registry.FindByUsername("alice")
	if stored.FullName != "Alice W." {
		t.Fatalf("update must flow through to the registry: %#v", stored)
	}
	if store.active == nil || store.active.FullName != "Alice W." {
		t.Fatalf("update must persist the active user")
	}
}

func TestUpdateProfile_RequiresSession(t *testing.T) {
	session, _ := newTestSession(&memStore{})
	if _, ok := session.UpdateProfile(ProfileUpdate{Bio: "x"}); ok {
		t.Fatalf("update without a session must be rejected")
	}
}
