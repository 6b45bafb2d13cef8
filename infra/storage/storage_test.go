package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gek-social/gek/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	return s
}

func TestUsers_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := []domain.User{
		{ID: "1", Username: "alice", FullName: "Alice", Bio: "hi"},
		{ID: "2", Username: "bob", Followers: 5},
	}
	if err := s.SaveUsers(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := s.LoadUsers()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 2 || got[0].Username != "alice" || got[1].Followers != 5 {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestLoadUsers_MissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	users, err := s.LoadUsers()
	if err != nil {
		t.Fatalf("missing registry must not error: %v", err)
	}
	if users != nil {
		t.Fatalf("missing registry must be empty: %#v", users)
	}
}

func TestLoadUsers_CorruptFileErrors(t *testing.T) {
	dir := t.TempDir()
	s, _ := New(dir)
	if err := os.WriteFile(filepath.Join(dir, "identity_registry.json"), []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadUsers(); err == nil {
		t.Fatalf("corrupt registry must surface an error")
	}
}

func TestActiveUser_Lifecycle(t *testing.T) {
	s := newTestStore(t)

	if _, ok, err := s.LoadActiveUser(); err != nil || ok {
		t.Fatalf("fresh store should have no session: ok=%v err=%v", ok, err)
	}
	if s.HasActiveUser() {
		t.Fatalf("fresh store must report no session")
	}

	alice := domain.User{ID: "1", Username: "alice"}
	if err := s.SaveActiveUser(alice); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, ok, err := s.LoadActiveUser()
	if err != nil || !ok || got.Username != "alice" {
		t.Fatalf("load mismatch: %#v ok=%v err=%v", got, ok, err)
	}
	if !s.HasActiveUser() {
		t.Fatalf("session must be reported after save")
	}

	if err := s.ClearActiveUser(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if s.HasActiveUser() {
		t.Fatalf("clear must remove the session")
	}
	if err := s.ClearActiveUser(); err != nil {
		t.Fatalf("clearing twice must be safe: %v", err)
	}
}
