package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gek-social/gek/tui/common"
)

// SubmitMsg is sent when the user submits a username.
type SubmitMsg struct {
	Username string
}

// Model is the login screen: a single username prompt.
type Model struct {
	input textinput.Model
	err   string
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Username"
	ti.CharLimit = 30
	ti.Width = 28
	ti.Focus()
	return Model{input: ti}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			username := strings.TrimSpace(m.input.Value())
			if username == "" {
				m.err = "Pick a username to continue."
				return m, nil
			}
			m.err = ""
			return m, func() tea.Msg { return SubmitMsg{Username: username} }
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("Gek"))
	b.WriteString("\n")
	b.WriteString(common.TaglineStyle.Render("Connect, Share, Inspire."))
	b.WriteString("\n\n ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString("\n " + common.ErrorStyle.Render(m.err) + "\n")
	}
	b.WriteString("\n " + common.HintStyle.Render("enter log in • ctrl+c quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
