// Package login is the sign-in screen: a username and an API token are
// collected and stored through the identity manager.
package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/quizdeck/internal/identity"
	"github.com/minhvu/quizdeck/internal/router"
	"github.com/minhvu/quizdeck/internal/screen"
	"github.com/minhvu/quizdeck/internal/ui/components"
	"github.com/minhvu/quizdeck/internal/ui/layout"
	"github.com/minhvu/quizdeck/internal/ui/theme"
)

// loginDoneMsg is sent when storing the credential finishes.
type loginDoneMsg struct {
	Err error
}

// LoginScreen collects a username and API token.
type LoginScreen struct {
	gate identity.Manager

	username components.TextInput
	token    components.TextInput
	focus    int // 0 = username, 1 = token
	errMsg   string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the sign-in screen.
func New(gate identity.Manager) *LoginScreen {
	return &LoginScreen{
		gate:     gate,
		username: components.NewTextInput("username", false, 64),
		token:    components.NewTextInput("API token", true, 256),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.username.Focus()
}

func (s *LoginScreen) Title() string {
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		if msg.Err != nil {
			s.errMsg = "Sign-in failed: " + msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "shift+tab":
			s.switchFocus()
			return s, nil
		case "enter":
			if s.focus == 0 {
				s.switchFocus()
				return s, nil
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	if s.focus == 0 {
		s.username, cmd = s.username.Update(msg)
	} else {
		s.token, cmd = s.token.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) switchFocus() {
	if s.focus == 0 {
		s.focus = 1
		s.username.Blur()
		s.token.Focus()
	} else {
		s.focus = 0
		s.token.Blur()
		s.username.Focus()
	}
}

func (s *LoginScreen) submit() tea.Cmd {
	creds := identity.Credentials{
		Username: strings.TrimSpace(s.username.Value()),
		Token:    strings.TrimSpace(s.token.Value()),
	}
	if creds.Username == "" || creds.Token == "" {
		s.errMsg = "Both username and token are required."
		return nil
	}
	s.errMsg = ""
	gate := s.gate
	return func() tea.Msg {
		return loginDoneMsg{Err: gate.Login(creds)}
	}
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Title.Render("Sign in to Quizdeck")))
	b.WriteString("\n\n")

	b.WriteString(centered(width, s.renderField("Username", s.username.View(), s.focus == 0)))
	b.WriteString("\n")
	b.WriteString(centered(width, s.renderField("API token", s.token.View(), s.focus == 1)))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Incorrect.Render(s.errMsg)))
	}
	return b.String()
}

func (s *LoginScreen) renderField(label, input string, focused bool) string {
	style := theme.Hint
	if focused {
		style = theme.Selected
	}
	return style.Render(label) + "\n" + input
}

func centered(width int, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}
