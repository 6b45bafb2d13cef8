package domain

import "time"

// NotificationKind identifies the action behind a notification.
type NotificationKind int

const (
	NotifyLike NotificationKind = iota
	NotifyComment
	NotifyShare
)

func (k NotificationKind) String() string {
	switch k {
	case NotifyLike:
		return "LIKE"
	case NotifyComment:
		return "COMMENT"
	case NotifyShare:
		return "SHARE"
	default:
		return "UNKNOWN"
	}
}

// Notification records an action taken during the current session.
// The log is session-scoped: it is cleared on logout.
type Notification struct {
	ID        string
	Kind      NotificationKind
	Actor     User
	PostID    string
	PostImage string
	Text      string // comment body for NotifyComment
	CreatedAt time.Time
}
