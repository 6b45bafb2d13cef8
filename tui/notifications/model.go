package notifications

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gek-social/gek/app"
	"github.com/gek-social/gek/domain"
	"github.com/gek-social/gek/tui/common"
)

// BackMsg is sent when the user leaves the notifications view.
type BackMsg struct{}

// Model lists the session's notifications, most recent first.
type Model struct {
	entries []domain.Notification
	cursor  int
}

func New(log *app.Log) Model {
	return Model{entries: log.All()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, func() tea.Msg { return BackMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("Notifications"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(common.HintStyle.Render(" Activity on your posts will appear here."))
		b.WriteString("\n\n " + common.HintStyle.Render("esc back"))
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	now := time.Now()
	for i, n := range m.entries {
		marker := "  "
		if i == m.cursor {
			marker = common.SuccessStyle.Render("> ")
		}
		line := marker +
			common.BadgeStyle.Render(fmt.Sprintf("[%s]", n.Kind)) + " " +
			common.UsernameStyle.Render(n.Actor.Username) + " " +
			common.ContentStyle.Render(describe(n)) + " " +
			common.TimestampStyle.Render(common.RelativeTime(n.CreatedAt, now))
		b.WriteString(common.Truncate(line, 64) + "\n")
	}

	b.WriteString("\n " + common.HintStyle.Render("esc back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func describe(n domain.Notification) string {
	switch n.Kind {
	case domain.NotifyLike:
		return "liked a post."
	case domain.NotifyComment:
		return fmt.Sprintf("commented: %q", n.Text)
	case domain.NotifyShare:
		return "shared a post."
	default:
		return ""
	}
}
