package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"resty.dev/v3"

	"github.com/gek-social/gek/app"
	"github.com/gek-social/gek/domain"
	"github.com/gek-social/gek/tui/common"
)

const (
	previewWidth  = 24
	previewHeight = 8
	// Only the most recent comments are shown until the post is expanded.
	collapsedComments = 2
)

// --- Messages routed to the root model ---

// LikeMsg is sent when the viewer toggles a like on a post.
type LikeMsg struct {
	PostID string
}

// CommentMsg is sent when the viewer submits a comment.
type CommentMsg struct {
	PostID string
	Text   string
}

// ShareMsg is sent when the viewer shares a post.
type ShareMsg struct {
	PostID string
}

// OpenProfileMsg is sent when the viewer opens a post author's profile.
type OpenProfileMsg struct {
	User domain.User
}

// PreviewLoadedMsg delivers a rendered image preview for one post.
type PreviewLoadedMsg struct {
	Key     string
	Preview string
	Err     error
}

// Model holds the state for the feed view.
type Model struct {
	store  *app.Feed
	viewer domain.User

	posts    []domain.Post
	cursor   int
	start    int // first visible post, for scrolling
	expanded map[string]bool

	commenting bool
	comment    textinput.Model

	previews map[string]string
	fetching map[string]bool
	client   *resty.Client

	keys          common.KeyMap
	width, height int
}

// New creates a feed model reading from the given store.
func New(store *app.Feed, viewer domain.User) Model {
	ci := textinput.New()
	ci.Placeholder = "Add a comment..."
	ci.CharLimit = 280
	ci.Width = 48

	return Model{
		store:    store,
		viewer:   viewer,
		posts:    store.Posts(),
		expanded: make(map[string]bool),
		comment:  ci,
		previews: make(map[string]string),
		fetching: make(map[string]bool),
		client:   resty.New().SetTimeout(10 * time.Second),
		keys:     common.DefaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.ensurePreviewCmd()
}

// Reload refreshes the post snapshot from the store, keeping the cursor on
// a valid entry.
func (m Model) Reload() Model {
	m.posts = m.store.Posts()
	if m.cursor >= len(m.posts) {
		m.cursor = len(m.posts) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

// InputActive reports whether the view is capturing free-form text, so the
// root model knows to suspend global key bindings.
func (m Model) InputActive() bool {
	return m.commenting
}

// SelectedPost returns the currently highlighted post, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	if len(m.posts) == 0 || m.cursor < 0 || m.cursor >= len(m.posts) {
		return domain.Post{}, false
	}
	return m.posts[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case PreviewLoadedMsg:
		delete(m.fetching, msg.Key)
		if msg.Err == nil && msg.Preview != "" {
			m.previews[msg.Key] = msg.Preview
		}
		return m, nil

	case tea.KeyMsg:
		if m.commenting {
			return m.updateCommentInput(msg)
		}

		post, hasPost := m.SelectedPost()
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, m.ensurePreviewCmd()

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.posts)-1 {
				m.cursor++
			}
			return m, m.ensurePreviewCmd()

		case key.Matches(msg, m.keys.Like):
			if hasPost {
				id := post.ID
				return m, func() tea.Msg { return LikeMsg{PostID: id} }
			}

		case key.Matches(msg, m.keys.Comment):
			if hasPost {
				m.commenting = true
				m.comment.SetValue("")
				return m, m.comment.Focus()
			}

		case key.Matches(msg, m.keys.Share):
			if hasPost {
				id := post.ID
				return m, func() tea.Msg { return ShareMsg{PostID: id} }
			}

		case key.Matches(msg, m.keys.Expand):
			if hasPost {
				m.expanded[post.ID] = !m.expanded[post.ID]
			}

		case key.Matches(msg, m.keys.Open):
			if hasPost {
				author := post.Author
				return m, func() tea.Msg { return OpenProfileMsg{User: author} }
			}
		}
	}

	return m, nil
}

func (m Model) updateCommentInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commenting = false
		m.comment.Blur()
		return m, nil
	case "enter":
		post, ok := m.SelectedPost()
		m.commenting = false
		m.comment.Blur()
		if !ok {
			return m, nil
		}
		text := m.comment.Value()
		id := post.ID
		return m, func() tea.Msg { return CommentMsg{PostID: id, Text: text} }
	}

	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}
