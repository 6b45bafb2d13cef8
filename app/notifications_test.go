package app

import (
	"testing"

	"github.com/gek-social/gek/domain"
)

func TestLog_RecordPrepends(t *testing.T) {
	session, _ := newTestSession(&memStore{})
	session.Login("alice")
	log := NewLog(session)

	bob := makeUser("2", "bob")
	post := domain.Post{ID: "p1", ImageURI: "file:///a.jpg"}

	log.Record(domain.NotifyLike, bob, post, "")
	log.Record(domain.NotifyComment, bob, post, "great!")

	entries := log.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(entries))
	}
	if entries[0].Kind != domain.NotifyComment || entries[0].Text != "great!" {
		t.Fatalf("newest notification must come first: %#v", entries[0])
	}
	if entries[1].Kind != domain.NotifyLike {
		t.Fatalf("like should be second: %#v", entries[1])
	}
	if entries[0].PostID != "p1" || entries[0].PostImage != "file:///a.jpg" {
		t.Fatalf("notification must reference the post: %#v", entries[0])
	}
	if entries[0].Actor.Username != "bob" {
		t.Fatalf("notification must carry the actor: %#v", entries[0])
	}
}

func TestLog_RequiresActiveSession(t *testing.T) {
	session, _ := newTestSession(&memStore{})
	log := NewLog(session)

	log.Record(domain.NotifyShare, makeUser("2", "bob"), domain.Post{ID: "p1"}, "")
	if log.Len() != 0 {
		t.Fatalf("recording without a session must be a no-op")
	}
}

func TestLog_Clear(t *testing.T) {
	session, _ := newTestSession(&memStore{})
	session.Login("alice")
	log := NewLog(session)
	log.Record(domain.NotifyLike, makeUser("2", "bob"), domain.Post{ID: "p1"}, "")

	log.Clear()
	if log.Len() != 0 {
		t.Fatalf("clear must empty the log")
	}
}
