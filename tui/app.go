package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gek-social/gek/app"
	"github.com/gek-social/gek/domain"
	"github.com/gek-social/gek/tui/common"
	"github.com/gek-social/gek/tui/feed"
	"github.com/gek-social/gek/tui/login"
	"github.com/gek-social/gek/tui/notifications"
	"github.com/gek-social/gek/tui/profile"
	"github.com/gek-social/gek/tui/search"
	"github.com/gek-social/gek/tui/upload"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Registry      *app.Registry
	Session       *app.Session
	Feed          *app.Feed
	Notifications *app.Log
	Suggest       *app.Suggester
}

type activeView int

const (
	loginView activeView = iota
	feedView
	uploadView
	profileView
	searchView
	notificationsView
)

// App is the root Bubble Tea model. It routes user intents between
// sub-views and applies their mutations to the stores.
type App struct {
	deps   Deps
	active activeView

	login  login.Model
	feed   feed.Model
	upload upload.Model
	prof   profile.Model
	search search.Model
	notifs notifications.Model

	// profileTarget is the pending profile-navigation target. Session
	// scoped: reset on logout.
	profileTarget *domain.User

	keys          common.KeyMap
	status        string // Transient status message (e.g. "Posted!")
	width, height int
}

// NewApp creates the root model with all dependencies wired. If a session
// was restored before wiring, the app resumes directly into the feed.
func NewApp(deps Deps) App {
	a := App{
		deps:   deps,
		active: loginView,
		login:  login.New(),
		keys:   common.DefaultKeyMap(),
	}
	if user, ok := deps.Session.Active(); ok {
		a.active = feedView
		a.feed = feed.New(deps.Feed, user)
		a.status = "Welcome back, @" + user.Username
	}
	return a
}

// Init delegates to the active sub-model.
func (a App) Init() tea.Cmd {
	switch a.active {
	case feedView:
		return a.feed.Init()
	default:
		return a.login.Init()
	}
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Fall through to the active sub-model below.

	case tea.KeyMsg:
		if handled, model, cmd := a.handleGlobalKey(msg); handled {
			return model, cmd
		}

	case login.SubmitMsg:
		user, err := a.deps.Session.Login(msg.Username)
		if err != nil {
			return a, nil
		}
		a.active = feedView
		a.feed = feed.New(a.deps.Feed, user)
		a.status = "Welcome, @" + user.Username
		return a, a.feed.Init()

	case feed.LikeMsg:
		liked, ok := a.deps.Feed.ToggleLike(msg.PostID)
		if !ok {
			return a, nil
		}
		// A LIKE notification only accompanies the unliked→liked
		// transition, never the reverse.
		if liked {
			if user, ok := a.deps.Session.Active(); ok {
				if post, found := a.deps.Feed.Post(msg.PostID); found {
					a.deps.Notifications.Record(domain.NotifyLike, user, post, "")
				}
			}
			a.status = "Post liked."
		} else {
			a.status = "Like removed."
		}
		a.feed = a.feed.Reload()
		return a, nil

	case feed.CommentMsg:
		user, ok := a.deps.Session.Active()
		if !ok {
			return a, nil
		}
		comment, added := a.deps.Feed.AddComment(msg.PostID, user, msg.Text)
		if !added {
			return a, nil
		}
		if post, found := a.deps.Feed.Post(msg.PostID); found {
			a.deps.Notifications.Record(domain.NotifyComment, user, post, comment.Text)
		}
		a.status = "Comment added."
		a.feed = a.feed.Reload()
		return a, nil

	case feed.ShareMsg:
		if user, ok := a.deps.Session.Active(); ok {
			if post, found := a.deps.Feed.Post(msg.PostID); found {
				a.deps.Notifications.Record(domain.NotifyShare, user, post, "")
				a.status = "Post shared."
			}
		}
		return a, nil

	case feed.OpenProfileMsg:
		return a.openProfile(msg.User), nil

	case search.OpenProfileMsg:
		return a.openProfile(msg.User), nil

	case profile.SaveMsg:
		user, ok := a.deps.Session.UpdateProfile(msg.Update)
		if !ok {
			return a, nil
		}
		a.prof = profile.New(user, a.deps.Feed.PostsByAuthor(user.ID), true)
		a.profileTarget = &user
		a.status = "Profile updated."
		return a, nil

	case upload.DoneMsg:
		a.active = feedView
		if msg.Cancelled {
			a.status = "Cancelled."
			return a, nil
		}
		user, ok := a.deps.Session.Active()
		if !ok {
			return a, nil
		}
		a.deps.Feed.CreatePost(user, msg.ImageURI, msg.Caption, msg.Location)
		a.feed = a.feed.Reload()
		a.status = "🔥 Posted!"
		return a, a.feed.Init()

	case profile.BackMsg, search.BackMsg, notifications.BackMsg:
		a.active = feedView
		a.feed = a.feed.Reload()
		return a, nil

	case spinner.TickMsg:
		if a.active == uploadView {
			var cmd tea.Cmd
			a.upload, cmd = a.upload.Update(msg)
			return a, cmd
		}
	}

	return a.delegate(msg)
}

// handleGlobalKey applies navigation bindings when the active view is not
// capturing text input.
func (a App) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if a.active == loginView || a.inputActive() {
		// ctrl+c always quits, even mid-input.
		if msg.String() == "ctrl+c" {
			return true, a, tea.Quit
		}
		return false, a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return true, a, tea.Quit

	case key.Matches(msg, a.keys.Feed):
		a.active = feedView
		a.feed = a.feed.Reload()
		a.status = ""
		return true, a, a.feed.Init()

	case key.Matches(msg, a.keys.Search):
		a.active = searchView
		a.search = search.New(a.deps.Registry)
		a.status = ""
		return true, a, a.search.Init()

	case key.Matches(msg, a.keys.Notifications):
		a.active = notificationsView
		a.notifs = notifications.New(a.deps.Notifications)
		a.status = ""
		return true, a, nil

	case key.Matches(msg, a.keys.Profile):
		if user, ok := a.deps.Session.Active(); ok {
			model := a.openProfile(user)
			return true, model, nil
		}

	case key.Matches(msg, a.keys.Upload):
		if user, ok := a.deps.Session.Active(); ok {
			a.active = uploadView
			a.upload = upload.New(a.deps.Suggest, user)
			a.status = ""
			return true, a, a.upload.Init()
		}

	case key.Matches(msg, a.keys.Logout):
		return true, a.logout(), nil
	}

	return false, a, nil
}

// inputActive reports whether the active view is capturing free-form text.
func (a App) inputActive() bool {
	switch a.active {
	case feedView:
		return a.feed.InputActive()
	case profileView:
		return a.prof.InputActive()
	case searchView, uploadView:
		return true
	default:
		return false
	}
}

// openProfile shows a user's profile. Viewing yourself always reflects the
// live session identity so fresh edits are visible; anyone else renders
// from the snapshot that was handed over.
func (a App) openProfile(user domain.User) App {
	isOwn := false
	if current, ok := a.deps.Session.Active(); ok && current.ID == user.ID {
		user = current
		isOwn = true
	}
	a.profileTarget = &user
	a.prof = profile.New(user, a.deps.Feed.PostsByAuthor(user.ID), isOwn)
	a.active = profileView
	a.status = ""
	return a
}

// logout resets all session-scoped state: identity, notification log,
// pending profile target, and the search query.
func (a App) logout() App {
	a.deps.Session.Logout()
	a.deps.Notifications.Clear()
	a.profileTarget = nil
	a.search = search.Model{}
	a.feed = feed.Model{}
	a.login = login.New()
	a.active = loginView
	a.status = "Logged out."
	return a
}

func (a App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case loginView:
		a.login, cmd = a.login.Update(msg)
	case feedView:
		a.feed, cmd = a.feed.Update(msg)
	case uploadView:
		a.upload, cmd = a.upload.Update(msg)
	case profileView:
		a.prof, cmd = a.prof.Update(msg)
	case searchView:
		a.search, cmd = a.search.Update(msg)
	case notificationsView:
		a.notifs, cmd = a.notifs.Update(msg)
	}
	return a, cmd
}

// View renders the active sub-model plus the transient status line.
func (a App) View() string {
	var s string
	switch a.active {
	case loginView:
		s = a.login.View()
	case feedView:
		s = a.feed.View()
	case uploadView:
		s = a.upload.View()
	case profileView:
		s = a.prof.View()
	case searchView:
		s = a.search.View()
	case notificationsView:
		s = a.notifs.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}
	return s
}
