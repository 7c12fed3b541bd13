// Package app wires the API client, identity gate, and screens into the
// root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/quizdeck/internal/api"
	"github.com/minhvu/quizdeck/internal/identity"
	"github.com/minhvu/quizdeck/internal/router"
	"github.com/minhvu/quizdeck/internal/screen"
	"github.com/minhvu/quizdeck/internal/screens/home"
	sess "github.com/minhvu/quizdeck/internal/session"
	"github.com/minhvu/quizdeck/internal/ui/layout"
)

// Options carries the shared dependencies of the application.
type Options struct {
	Client *api.Client
	Gate   identity.Manager
	Cache  *sess.Cache
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	gate   identity.Manager
	width  int
	height int
}

// newAppModel creates an AppModel rooted at the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Client, opts.Gate, opts.Cache)
	return AppModel{
		router: router.New(homeScreen),
		gate:   opts.Gate,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc is deliberately not handled here: screens own it, so a
		// running test can cancel its timer before the pop.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	who := ""
	if m.gate.IsLoggedIn() {
		who = m.gate.Identity()
	}
	header := layout.RenderHeader(title, who, m.width)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// footerHints lets the active screen override the default key hints.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
