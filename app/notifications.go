package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/gek-social/gek/domain"
)

// Log is the session-scoped notification log, most recent first.
// Recording without an active session is a no-op.
type Log struct {
	session *Session
	entries []domain.Notification
	now     func() time.Time
}

func NewLog(session *Session) *Log {
	return &Log{session: session, now: time.Now}
}

// Record prepends a notification for an action the actor performed on the
// post. text carries the comment body for comment notifications.
func (l *Log) Record(kind domain.NotificationKind, actor domain.User, post domain.Post, text string) {
	if !l.session.LoggedIn() {
		return
	}
	n := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Actor:     actor,
		PostID:    post.ID,
		PostImage: post.ImageURI,
		Text:      text,
		CreatedAt: l.now(),
	}
	l.entries = append([]domain.Notification{n}, l.entries...)
}

// All returns a snapshot of the log, most recent first.
func (l *Log) All() []domain.Notification {
	return append([]domain.Notification{}, l.entries...)
}

// Clear empties the log. Called on logout.
func (l *Log) Clear() {
	l.entries = nil
}

// Len reports the number of notifications in the log.
func (l *Log) Len() int {
	return len(l.entries)
}
