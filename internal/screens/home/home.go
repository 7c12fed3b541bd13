// Package home is the main menu screen.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/quizdeck/internal/directory"
	"github.com/minhvu/quizdeck/internal/history"
	"github.com/minhvu/quizdeck/internal/identity"
	"github.com/minhvu/quizdeck/internal/router"
	"github.com/minhvu/quizdeck/internal/screen"
	historyscreen "github.com/minhvu/quizdeck/internal/screens/history"
	"github.com/minhvu/quizdeck/internal/screens/login"
	"github.com/minhvu/quizdeck/internal/screens/sets"
	sessionscreen "github.com/minhvu/quizdeck/internal/screens/session"
	sess "github.com/minhvu/quizdeck/internal/session"
	"github.com/minhvu/quizdeck/internal/ui/components"
	"github.com/minhvu/quizdeck/internal/ui/theme"
)

// Client is the full API surface the home screen's children need.
type Client interface {
	directory.Lister
	history.Fetcher
	sessionscreen.API
}

// signedOutMsg is sent when the sign-out finishes.
type signedOutMsg struct {
	Err error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	client Client
	gate   identity.Manager
	cache  *sess.Cache

	menu     components.Menu
	loggedIn bool
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(client Client, gate identity.Manager, cache *sess.Cache) *HomeScreen {
	h := &HomeScreen{client: client, gate: gate, cache: cache}
	h.loggedIn = gate.IsLoggedIn()
	h.menu = components.NewMenu(h.menuItems())
	return h
}

// menuItems builds the menu for the current sign-in state.
func (h *HomeScreen) menuItems() []components.MenuItem {
	items := []components.MenuItem{
		{Label: "QUESTION SETS", Action: func() tea.Cmd {
			return func() tea.Msg {
				dir := directory.New(h.client, h.gate)
				return router.PushScreenMsg{Screen: sets.New(dir, h.client, h.gate, h.cache)}
			}
		}},
		{Label: "TEST HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				agg := history.NewAggregator(h.client, h.gate)
				return router.PushScreenMsg{Screen: historyscreen.New(agg)}
			}
		}},
	}

	if h.loggedIn {
		items = append(items, components.MenuItem{Label: "SIGN OUT", Action: func() tea.Cmd {
			return func() tea.Msg {
				return signedOutMsg{Err: h.gate.Logout()}
			}
		}})
	} else {
		items = append(items, components.MenuItem{Label: "SIGN IN", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: login.New(h.gate)}
			}
		}})
	}

	return append(items, components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
		return tea.Quit
	}})
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// The sign-in state can change underneath us while the login screen is
	// on top of the stack; rebuild the menu when it no longer matches.
	if h.gate.IsLoggedIn() != h.loggedIn {
		h.loggedIn = h.gate.IsLoggedIn()
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.menuItems())
		if selected < len(h.menu.Items) {
			h.menu.Selected = selected
		}
	}

	if out, ok := msg.(signedOutMsg); ok {
		if out.Err != nil {
			h.errMsg = "Sign-out failed: " + out.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.loggedIn = false
		h.menu = components.NewMenu(h.menuItems())
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Title.Render("QUIZDECK")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Subtitle.Render("Take tests from your question sets")))
	b.WriteString("\n\n")

	if h.loggedIn {
		b.WriteString(centered(width, theme.Body.Render("Signed in as "+h.gate.Identity())))
	} else {
		b.WriteString(centered(width, theme.Hint.Render("Not signed in")))
	}
	b.WriteString("\n\n")

	b.WriteString(centered(width, h.menu.View()))

	if h.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Incorrect.Render(h.errMsg)))
	}
	return b.String()
}

func centered(width int, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}
