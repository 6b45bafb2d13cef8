package app

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/gek-social/gek/domain"
)

// Feed owns the ordered sequence of posts shown to the session user.
// Posts are most-recent-first and are never edited or deleted.
type Feed struct {
	posts []domain.Post
	now   func() time.Time
}

func NewFeed() *Feed {
	return &Feed{now: time.Now}
}

// CreatePost builds a fresh post for the author and prepends it to the feed.
// The author record is embedded as a point-in-time snapshot.
func (f *Feed) CreatePost(author domain.User, imageURI, caption, location string) domain.Post {
	post := domain.Post{
		ID:        uuid.NewString(),
		AuthorID:  author.ID,
		Author:    author,
		ImageURI:  imageURI,
		Caption:   caption,
		Location:  location,
		CreatedAt: f.now(),
	}
	f.posts = append([]domain.Post{post}, f.posts...)
	return post
}

// ToggleLike flips the viewer's like on the given post and adjusts its like
// count by one. It returns the new liked state so the caller can decide
// whether to emit a notification. Unknown ids are a no-op.
func (f *Feed) ToggleLike(postID string) (liked, ok bool) {
	for i := range f.posts {
		if f.posts[i].ID != postID {
			continue
		}
		p := &f.posts[i]
		p.LikedByViewer = !p.LikedByViewer
		if p.LikedByViewer {
			p.Likes++
		} else {
			p.Likes--
		}
		return p.LikedByViewer, true
	}
	return false, false
}

// AddComment appends a comment to the post's sequence, oldest first.
// Unknown ids and empty or whitespace-only text are a no-op.
func (f *Feed) AddComment(postID string, actor domain.User, text string) (domain.Comment, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Comment{}, false
	}
	for i := range f.posts {
		if f.posts[i].ID != postID {
			continue
		}
		c := domain.Comment{
			ID:        uuid.NewString(),
			UserID:    actor.ID,
			Username:  actor.Username,
			Text:      text,
			CreatedAt: f.now(),
		}
		f.posts[i].Comments = append(f.posts[i].Comments, c)
		return c, true
	}
	return domain.Comment{}, false
}

// PostsByAuthor filters the feed down to one author, preserving feed order.
func (f *Feed) PostsByAuthor(userID string) []domain.Post {
	return lo.Filter(f.posts, func(p domain.Post, _ int) bool {
		return p.AuthorID == userID
	})
}

// Post returns the post with the given id.
func (f *Feed) Post(id string) (domain.Post, bool) {
	return lo.Find(f.posts, func(p domain.Post) bool {
		return p.ID == id
	})
}

// Posts returns a snapshot of the feed, most recent first.
func (f *Feed) Posts() []domain.Post {
	return append([]domain.Post{}, f.posts...)
}

// Len reports the number of posts in the feed.
func (f *Feed) Len() int {
	return len(f.posts)
}

// Seed fills an empty feed with starter content. It does nothing once the
// feed has posts.
func (f *Feed) Seed(posts ...domain.Post) {
	if len(f.posts) > 0 {
		return
	}
	f.posts = append(f.posts, posts...)
}
