package feed

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gek-social/gek/app"
	"github.com/gek-social/gek/domain"
)

func seededModel(t *testing.T) (Model, *app.Feed) {
	t.Helper()
	store := app.NewFeed()
	alice := domain.User{ID: "1", Username: "alice", FullName: "Alice"}
	bob := domain.User{ID: "2", Username: "bob", FullName: "Bob"}
	store.CreatePost(alice, "file:///a.jpg", "older", "")
	store.CreatePost(bob, "file:///b.jpg", "newer", "Paris, France")
	viewer := domain.User{ID: "9", Username: "viewer"}
	return New(store, viewer), store
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNavigation_ClampsToFeed(t *testing.T) {
	m, _ := seededModel(t)

	m, _ = m.Update(keyRune('k'))
	if m.cursor != 0 {
		t.Fatalf("up at the top must stay at 0, got %d", m.cursor)
	}

	m, _ = m.Update(keyRune('j'))
	if m.cursor != 1 {
		t.Fatalf("down must advance, got %d", m.cursor)
	}
	m, _ = m.Update(keyRune('j'))
	if m.cursor != 1 {
		t.Fatalf("down at the bottom must stay, got %d", m.cursor)
	}
}

func TestLikeKey_EmitsLikeMsg(t *testing.T) {
	m, _ := seededModel(t)

	_, cmd := m.Update(keyRune('l'))
	if cmd == nil {
		t.Fatalf("like must emit a command")
	}
	like, ok := cmd().(LikeMsg)
	if !ok {
		t.Fatalf("expected LikeMsg, got %T", cmd())
	}
	selected, _ := m.SelectedPost()
	if like.PostID != selected.ID {
		t.Fatalf("like must target the selected post: %q vs %q", like.PostID, selected.ID)
	}
}

func TestCommentFlow(t *testing.T) {
	m, _ := seededModel(t)

	m, _ = m.Update(keyRune('c'))
	if !m.InputActive() {
		t.Fatalf("comment key must open the input")
	}

	// Global bindings like 'l' must go into the text box, not toggle likes.
	m, cmd := m.Update(keyRune('l'))
	if cmd != nil {
		if _, isLike := cmd().(LikeMsg); isLike {
			t.Fatalf("keystrokes while commenting must not trigger actions")
		}
	}

	m.comment.SetValue("nice shot")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.InputActive() {
		t.Fatalf("enter must close the input")
	}
	if cmd == nil {
		t.Fatalf("enter must emit the comment")
	}
	comment, ok := cmd().(CommentMsg)
	if !ok || comment.Text != "nice shot" {
		t.Fatalf("unexpected comment message: %#v", cmd())
	}
}

func TestCommentFlow_EscCancels(t *testing.T) {
	m, _ := seededModel(t)
	m, _ = m.Update(keyRune('c'))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.InputActive() || cmd != nil {
		t.Fatalf("esc must cancel without emitting anything")
	}
}

func TestOpenKey_EmitsAuthorProfile(t *testing.T) {
	m, _ := seededModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("open must emit a command")
	}
	open, ok := cmd().(OpenProfileMsg)
	if !ok || open.User.Username != "bob" {
		t.Fatalf("open must carry the newest post's author: %#v", cmd())
	}
}

func TestExpandToggles(t *testing.T) {
	m, _ := seededModel(t)
	selected, _ := m.SelectedPost()

	m, _ = m.Update(keyRune('x'))
	if !m.expanded[selected.ID] {
		t.Fatalf("x must expand the selected post's comments")
	}
	m, _ = m.Update(keyRune('x'))
	if m.expanded[selected.ID] {
		t.Fatalf("x again must collapse")
	}
}

func TestReload_ClampsCursor(t *testing.T) {
	store := app.NewFeed()
	alice := domain.User{ID: "1", Username: "alice"}
	store.CreatePost(alice, "a", "one", "")
	m := New(store, alice)
	m.cursor = 5

	m = m.Reload()
	if m.cursor != 0 {
		t.Fatalf("reload must clamp the cursor: %d", m.cursor)
	}
	if len(m.posts) != 1 {
		t.Fatalf("reload must refresh the snapshot: %d", len(m.posts))
	}

	store.CreatePost(alice, "b", "two", "")
	m = m.Reload()
	if len(m.posts) != 2 {
		t.Fatalf("reload must pick up new posts: %d", len(m.posts))
	}
}

func TestPreviewLoadedMsg_Caches(t *testing.T) {
	m, _ := seededModel(t)
	m.fetching["file:///a.jpg"] = true

	m, _ = m.Update(PreviewLoadedMsg{Key: "file:///a.jpg", Preview: "███"})
	if m.fetching["file:///a.jpg"] {
		t.Fatalf("arrival must clear the in-flight flag")
	}
	if m.previews["file:///a.jpg"] != "███" {
		t.Fatalf("preview must be cached")
	}
}
