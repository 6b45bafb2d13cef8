package upload

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gek-social/gek/app"
	"github.com/gek-social/gek/domain"
	"github.com/gek-social/gek/tui/common"
)

const (
	placeDebounce  = 500 * time.Millisecond
	suggestTimeout = 20 * time.Second
)

// DoneMsg is sent when the upload flow finishes, either with a new post's
// content or cancelled.
type DoneMsg struct {
	ImageURI  string
	Caption   string
	Location  string
	Cancelled bool
}

type captionMsg struct {
	Text string
}

// debounceMsg fires after the debounce window for one keystroke. Seq
// identifies the keystroke; a newer keystroke supersedes it.
type debounceMsg struct {
	Seq int
}

// placesMsg carries one place-search response. Seq identifies the request;
// responses for superseded requests are discarded.
type placesMsg struct {
	Seq    int
	Places []string
}

type step int

const (
	stepSelect step = iota
	stepDetails
)

// Model drives the two-step upload flow: pick an image, then edit caption
// and location before sharing.
type Model struct {
	suggest *app.Suggester
	user    domain.User

	step     step
	path     textinput.Model
	caption  textarea.Model
	imageB64 string
	imageURI string
	errMsg   string

	generating bool
	spinner    spinner.Model

	locOpen     bool
	location    string
	locInput    textinput.Model
	places      []string
	placeCursor int
	searching   bool

	typeSeq int // latest keystroke in the location box
	reqSeq  int // latest place-search request issued
}

// New starts the upload flow for the given user.
func New(suggest *app.Suggester, user domain.User) Model {
	pi := textinput.New()
	pi.Placeholder = "Path to an image file"
	pi.Width = 48
	pi.Focus()

	ta := textarea.New()
	ta.Placeholder = "Write a caption..."
	ta.CharLimit = 2200
	ta.SetWidth(48)
	ta.SetHeight(5)

	li := textinput.New()
	li.Placeholder = "Find a location"
	li.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C678DD"))

	return Model{
		suggest:  suggest,
		user:     user,
		path:     pi,
		caption:  ta,
		locInput: li,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.generating && !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case captionMsg:
		m.generating = false
		m.caption.SetValue(msg.Text)
		return m, nil

	case debounceMsg:
		// Only the newest keystroke's window triggers a request.
		if msg.Seq != m.typeSeq || !m.locOpen {
			return m, nil
		}
		query := m.locInput.Value()
		m.reqSeq++
		m.searching = true
		return m, tea.Batch(m.searchPlaces(query, m.reqSeq), m.spinner.Tick)

	case placesMsg:
		// A stale response for a superseded request must not apply.
		if msg.Seq != m.reqSeq {
			return m, nil
		}
		m.searching = false
		m.places = msg.Places
		m.placeCursor = 0
		return m, nil

	case tea.KeyMsg:
		switch m.step {
		case stepSelect:
			return m.updateSelect(msg)
		case stepDetails:
			return m.updateDetails(msg)
		}
	}
	return m, nil
}

func (m Model) updateSelect(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return DoneMsg{Cancelled: true} }
	case "enter":
		path := strings.TrimSpace(m.path.Value())
		if path == "" {
			m.errMsg = "Pick an image to share."
			return m, nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			m.errMsg = fmt.Sprintf("Could not read image: %v", err)
			return m, nil
		}
		m.errMsg = ""
		m.imageURI = path
		m.imageB64 = base64.StdEncoding.EncodeToString(data)
		m.step = stepDetails
		m.path.Blur()
		return m, m.caption.Focus()
	}

	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m Model) updateDetails(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.locOpen {
		return m.updateLocationSearch(msg)
	}

	switch msg.String() {
	case "esc":
		// Back to image selection, as in the upload modal's Back button.
		m.step = stepSelect
		m.caption.Blur()
		return m, m.path.Focus()
	case "ctrl+g":
		if m.generating {
			return m, nil
		}
		m.generating = true
		return m, tea.Batch(m.generateCaption(), m.spinner.Tick)
	case "ctrl+l":
		m.locOpen = true
		m.caption.Blur()
		m.locInput.SetValue("")
		m.places = nil
		return m, m.locInput.Focus()
	case "ctrl+s":
		return m, func() tea.Msg {
			return DoneMsg{
				ImageURI: m.imageURI,
				Caption:  strings.TrimSpace(m.caption.Value()),
				Location: m.location,
			}
		}
	}

	var cmd tea.Cmd
	m.caption, cmd = m.caption.Update(msg)
	return m, cmd
}

func (m Model) updateLocationSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.locOpen = false
		m.locInput.Blur()
		m.places = nil
		m.searching = false
		return m, m.caption.Focus()
	case "up":
		if m.placeCursor > 0 {
			m.placeCursor--
		}
		return m, nil
	case "down":
		if m.placeCursor < len(m.places)-1 {
			m.placeCursor++
		}
		return m, nil
	case "enter":
		if len(m.places) > 0 {
			m.location = m.places[m.placeCursor]
			m.locOpen = false
			m.locInput.Blur()
			m.places = nil
			return m, m.caption.Focus()
		}
		return m, nil
	}

	before := m.locInput.Value()
	var cmd tea.Cmd
	m.locInput, cmd = m.locInput.Update(msg)
	if m.locInput.Value() == before {
		return m, cmd
	}

	// Each edit opens a fresh debounce window that supersedes the last.
	m.typeSeq++
	seq := m.typeSeq
	debounce := tea.Tick(placeDebounce, func(time.Time) tea.Msg {
		return debounceMsg{Seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

func (m Model) generateCaption() tea.Cmd {
	suggest := m.suggest
	image := m.imageB64
	hint := strings.TrimSpace(m.caption.Value())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), suggestTimeout)
		defer cancel()
		return captionMsg{Text: suggest.Caption(ctx, image, hint)}
	}
}

func (m Model) searchPlaces(query string, seq int) tea.Cmd {
	suggest := m.suggest
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), suggestTimeout)
		defer cancel()
		return placesMsg{Seq: seq, Places: suggest.Places(ctx, query)}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("Create new post"))
	b.WriteString("\n\n")

	switch m.step {
	case stepSelect:
		b.WriteString(" " + m.path.View() + "\n")
		if m.errMsg != "" {
			b.WriteString("\n " + common.ErrorStyle.Render(m.errMsg) + "\n")
		}
		b.WriteString("\n " + common.HintStyle.Render("enter continue • esc cancel"))

	case stepDetails:
		b.WriteString(" " + common.UsernameStyle.Render("@"+m.user.Username) + "  " +
			common.TimestampStyle.Render(m.imageURI) + "\n\n")
		b.WriteString(m.caption.View() + "\n")

		if m.generating {
			b.WriteString("\n " + m.spinner.View() + " Thinking...\n")
		}

		if m.locOpen {
			b.WriteString("\n " + m.locInput.View() + "\n")
			switch {
			case m.searching:
				b.WriteString(" " + m.spinner.View() + common.HintStyle.Render(" Searching...") + "\n")
			case len(m.places) > 0:
				for i, place := range m.places {
					marker := "  "
					if i == m.placeCursor {
						marker = common.SuccessStyle.Render("> ")
					}
					b.WriteString(" " + marker + place + "\n")
				}
			case len([]rune(strings.TrimSpace(m.locInput.Value()))) >= 3:
				b.WriteString(" " + common.HintStyle.Render("No locations found") + "\n")
			}
			b.WriteString("\n " + common.HintStyle.Render("enter pick • esc close"))
		} else {
			location := m.location
			if location == "" {
				location = "Add location (ctrl+l)"
			}
			b.WriteString("\n " + common.LocationStyle.Render("📍 "+location) + "\n")
			b.WriteString("\n " + common.HintStyle.Render(
				"ctrl+g generate caption • ctrl+l location • ctrl+s share • esc back"))
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
