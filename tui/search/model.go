package search

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gek-social/gek/app"
	"github.com/gek-social/gek/domain"
	"github.com/gek-social/gek/tui/common"
)

// OpenProfileMsg is sent when a search result is selected.
type OpenProfileMsg struct {
	User domain.User
}

// BackMsg is sent when the user leaves the search view.
type BackMsg struct{}

// Model is the user search view: a live filter over the registry.
type Model struct {
	registry *app.Registry
	input    textinput.Model
	results  []domain.User
	cursor   int
}

func New(registry *app.Registry) Model {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.CharLimit = 50
	ti.Width = 32
	ti.Focus()

	return Model{
		registry: registry,
		input:    ti,
		results:  registry.Search(""),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Query returns the current search query.
func (m Model) Query() string {
	return m.input.Value()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, func() tea.Msg { return BackMsg{} }
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if len(m.results) > 0 {
				user := m.results[m.cursor]
				return m, func() tea.Msg { return OpenProfileMsg{User: user} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.results = m.registry.Search(m.input.Value())
	if m.cursor >= len(m.results) {
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("Search"))
	b.WriteString("\n\n ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		if strings.TrimSpace(m.input.Value()) == "" {
			b.WriteString(common.HintStyle.Render(" Search for users and friends."))
		} else {
			b.WriteString(common.HintStyle.Render(" No users found."))
		}
	}
	for i, user := range m.results {
		marker := "  "
		if i == m.cursor {
			marker = common.SuccessStyle.Render("> ")
		}
		line := marker + common.AuthorStyle.Render(user.FullName) +
			common.UsernameStyle.Render(" @"+user.Username)
		b.WriteString(common.Truncate(line, 48) + "\n")
	}

	b.WriteString("\n " + common.HintStyle.Render("enter open profile • esc back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
