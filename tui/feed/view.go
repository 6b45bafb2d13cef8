package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/gek-social/gek/domain"
	"github.com/gek-social/gek/tui/common"
)

const defaultCardWidth = 56

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("Gek"))
	b.WriteString(common.TaglineStyle.Render("@" + m.viewer.Username))
	b.WriteString("\n\n")

	if len(m.posts) == 0 {
		b.WriteString(common.HintStyle.Render(" Nothing here yet. Press u to share your first photo."))
		return b.String()
	}

	now := time.Now()
	top, bottom := m.visibleRange()
	for i := top; i < bottom; i++ {
		b.WriteString(m.renderPost(m.posts[i], i == m.cursor, now))
		b.WriteString("\n")
	}

	if m.commenting {
		b.WriteString("\n " + m.comment.View() + "\n")
		b.WriteString(" " + common.HintStyle.Render("enter post comment • esc cancel"))
	} else {
		b.WriteString("\n " + common.HintStyle.Render(
			"l like • c comment • s share • x comments • enter profile • u new post • / search • n activity • q quit"))
	}
	return b.String()
}

func (m Model) cardWidth() int {
	w := defaultCardWidth
	if m.width > 0 && m.width-4 < w {
		w = m.width - 4
	}
	if w < 24 {
		w = 24
	}
	return w
}

// visibleRange keeps the selected post on screen with a simple windowing
// scheme over whole posts.
func (m Model) visibleRange() (int, int) {
	perScreen := 2
	if m.height > 40 {
		perScreen = 3
	}
	top := m.cursor - (m.cursor % perScreen)
	bottom := top + perScreen
	if bottom > len(m.posts) {
		bottom = len(m.posts)
	}
	return top, bottom
}

func (m Model) renderPost(post domain.Post, selected bool, now time.Time) string {
	w := m.cardWidth()
	var b strings.Builder

	author := common.AuthorStyle.Render(post.Author.FullName) +
		common.UsernameStyle.Render(" @"+post.Author.Username)
	meta := common.TimestampStyle.Render(common.RelativeTime(post.CreatedAt, now))
	b.WriteString(common.Truncate(author, w-len(" "+common.RelativeTime(post.CreatedAt, now))-1))
	b.WriteString(" " + meta + "\n")

	if preview, ok := m.previews[post.ImageURI]; ok {
		b.WriteString(preview + "\n")
	} else {
		b.WriteString(common.HintStyle.Render("[ loading photo… ]") + "\n")
	}

	if post.Caption != "" {
		b.WriteString(common.ContentStyle.Width(w).Render(post.Caption) + "\n")
	}
	if post.Location != "" {
		b.WriteString(common.LocationStyle.Render("📍 "+post.Location) + "\n")
	}

	likeLine := fmt.Sprintf("♥ %d", post.Likes)
	if post.LikedByViewer {
		likeLine = common.LikedStyle.Render(likeLine + " (you)")
	} else {
		likeLine = common.TimestampStyle.Render(likeLine)
	}
	b.WriteString(likeLine)
	b.WriteString(common.TimestampStyle.Render(fmt.Sprintf("   💬 %d", len(post.Comments))))
	b.WriteString("\n")

	b.WriteString(m.renderComments(post, w, now))

	card := b.String()
	if selected {
		return common.SelectedStyle.Width(w).Render(card)
	}
	return common.UnselectedStyle.Width(w).Render(card)
}

// renderComments shows the most recent comments, collapsed to the last two
// unless the post is expanded.
func (m Model) renderComments(post domain.Post, w int, now time.Time) string {
	comments := post.Comments
	if len(comments) == 0 {
		return ""
	}
	if !m.expanded[post.ID] && len(comments) > collapsedComments {
		comments = comments[len(comments)-collapsedComments:]
	}

	var b strings.Builder
	if hidden := len(post.Comments) - len(comments); hidden > 0 {
		b.WriteString(common.HintStyle.Render(fmt.Sprintf("… %d earlier (x to expand)", hidden)) + "\n")
	}
	for _, c := range comments {
		line := common.UsernameStyle.Render(c.Username) + " " +
			common.ContentStyle.Render(c.Text) + " " +
			common.TimestampStyle.Render(common.RelativeTime(c.CreatedAt, now))
		b.WriteString(common.Truncate(line, w) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
