package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gek-social/gek/app"
	"github.com/gek-social/gek/domain"
	"github.com/gek-social/gek/tui/common"
)

// SaveMsg is sent when the user saves their profile edits.
type SaveMsg struct {
	Update app.ProfileUpdate
}

// BackMsg is sent when the user leaves the profile view.
type BackMsg struct{}

// Edit form focus order.
const (
	focusName = iota
	focusBio
	focusAvatar
	focusBanner
	focusCount
)

// Model renders one user's profile with their posts, and an inline edit
// form for the viewer's own profile.
type Model struct {
	user  domain.User
	posts []domain.Post
	isOwn bool

	editing bool
	focus   int
	name    textinput.Model
	bio     textarea.Model
	avatar  textinput.Model
	banner  textinput.Model

	cursor int
	keys   common.KeyMap
	width  int
}

// New creates a profile view. posts must already be filtered to this user.
func New(user domain.User, posts []domain.Post, isOwn bool) Model {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 60
	name.Width = 40

	bio := textarea.New()
	bio.Placeholder = "Bio"
	bio.CharLimit = 400
	bio.SetWidth(40)
	bio.SetHeight(3)

	avatar := textinput.New()
	avatar.Placeholder = "Avatar URI"
	avatar.Width = 40

	banner := textinput.New()
	banner.Placeholder = "Banner URI"
	banner.Width = 40

	return Model{
		user:   user,
		posts:  posts,
		isOwn:  isOwn,
		name:   name,
		bio:    bio,
		avatar: avatar,
		banner: banner,
		keys:   common.DefaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// InputActive reports whether the edit form is capturing keystrokes.
func (m Model) InputActive() bool {
	return m.editing
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if m.isOwn {
				return m.startEditing()
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.posts)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m Model) startEditing() (Model, tea.Cmd) {
	m.editing = true
	m.focus = focusName
	m.name.SetValue(m.user.FullName)
	m.bio.SetValue(m.user.Bio)
	m.avatar.SetValue(m.user.Avatar)
	m.banner.SetValue(m.user.Banner)
	m.blurAll()
	return m, m.name.Focus()
}

func (m *Model) blurAll() {
	m.name.Blur()
	m.bio.Blur()
	m.avatar.Blur()
	m.banner.Blur()
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.blurAll()
		return m, nil
	case "tab", "shift+tab":
		if msg.String() == "tab" {
			m.focus = (m.focus + 1) % focusCount
		} else {
			m.focus = (m.focus + focusCount - 1) % focusCount
		}
		m.blurAll()
		switch m.focus {
		case focusName:
			return m, m.name.Focus()
		case focusBio:
			return m, m.bio.Focus()
		case focusAvatar:
			return m, m.avatar.Focus()
		default:
			return m, m.banner.Focus()
		}
	case "ctrl+s":
		m.editing = false
		m.blurAll()
		upd := app.ProfileUpdate{
			FullName: m.name.Value(),
			Bio:      m.bio.Value(),
			Avatar:   m.avatar.Value(),
			Banner:   m.banner.Value(),
		}
		return m, func() tea.Msg { return SaveMsg{Update: upd} }
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusBio:
		m.bio, cmd = m.bio.Update(msg)
	case focusAvatar:
		m.avatar, cmd = m.avatar.Update(msg)
	default:
		m.banner, cmd = m.banner.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render(m.user.FullName))
	b.WriteString(common.UsernameStyle.Render(" @" + m.user.Username))
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString(" Name\n " + m.name.View() + "\n\n")
		b.WriteString(" Bio\n" + m.bio.View() + "\n\n")
		b.WriteString(" Avatar\n " + m.avatar.View() + "\n\n")
		b.WriteString(" Banner\n " + m.banner.View() + "\n\n")
		b.WriteString(" " + common.HintStyle.Render("tab next field • ctrl+s save • esc cancel"))
		return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
	}

	if m.user.Bio != "" {
		b.WriteString(common.ContentStyle.Width(48).Render(m.user.Bio) + "\n\n")
	}
	b.WriteString(fmt.Sprintf(" %s posts   %s followers   %s following\n\n",
		common.SuccessStyle.Render(fmt.Sprintf("%d", len(m.posts))),
		common.SuccessStyle.Render(fmt.Sprintf("%d", m.user.Followers)),
		common.SuccessStyle.Render(fmt.Sprintf("%d", m.user.Following))))

	if len(m.posts) == 0 {
		b.WriteString(common.HintStyle.Render(" No posts yet.") + "\n")
	}
	now := time.Now()
	for i, post := range m.posts {
		marker := "  "
		if i == m.cursor {
			marker = common.SuccessStyle.Render("> ")
		}
		line := fmt.Sprintf("%s%s  ♥ %d  💬 %d  %s",
			marker,
			common.ContentStyle.Render(firstLine(post.Caption)),
			post.Likes,
			len(post.Comments),
			common.TimestampStyle.Render(common.RelativeTime(post.CreatedAt, now)))
		b.WriteString(common.Truncate(line, 56) + "\n")
	}

	b.WriteString("\n " + common.HintStyle.Render(m.hints()))
	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

func (m Model) hints() string {
	if m.isOwn {
		return "e edit profile • esc back"
	}
	return "esc back"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
