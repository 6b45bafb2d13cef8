package domain

import "time"

// Comment is a single comment on a post. Immutable once created; it lives
// and dies with its parent post.
type Comment struct {
	ID        string
	UserID    string
	Username  string
	Text      string
	CreatedAt time.Time
}

// Post is a single photo post in the feed.
//
// Author is a snapshot of the user at post time, not a live reference:
// profile edits after posting do not change it.
type Post struct {
	ID            string
	AuthorID      string
	Author        User
	ImageURI      string
	Caption       string
	Location      string
	Likes         int
	LikedByViewer bool
	Comments      []Comment // oldest first
	CreatedAt     time.Time
}
