// Package sets is the question-set directory screen: it lists the sets
// visible to the signed-in identity, lets the owner flip a set's
// visibility, and starts a test session for the selected set.
package sets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/quizdeck/internal/api"
	"github.com/minhvu/quizdeck/internal/directory"
	"github.com/minhvu/quizdeck/internal/identity"
	"github.com/minhvu/quizdeck/internal/router"
	"github.com/minhvu/quizdeck/internal/screen"
	sessionscreen "github.com/minhvu/quizdeck/internal/screens/session"
	sess "github.com/minhvu/quizdeck/internal/session"
	"github.com/minhvu/quizdeck/internal/ui/layout"
	"github.com/minhvu/quizdeck/internal/ui/theme"
)

// SetsScreen shows the question-set directory.
type SetsScreen struct {
	dir    *directory.Directory
	client sessionscreen.API
	gate   identity.Gate
	cache  *sess.Cache

	cursor        int
	loading       bool
	loginRequired bool
	errMsg        string
}

var _ screen.Screen = (*SetsScreen)(nil)
var _ screen.KeyHintProvider = (*SetsScreen)(nil)

// New creates the directory screen. The cache is shared with session
// screens so a set's row can show the score of an earlier attempt.
func New(dir *directory.Directory, client sessionscreen.API, gate identity.Gate, cache *sess.Cache) *SetsScreen {
	return &SetsScreen{dir: dir, client: client, gate: gate, cache: cache}
}

func (s *SetsScreen) Init() tea.Cmd {
	return s.refresh()
}

func (s *SetsScreen) Title() string {
	return "Question Sets"
}

func (s *SetsScreen) KeyHints() []layout.KeyHint {
	if s.loginRequired {
		return []layout.KeyHint{
			{Key: "R", Description: "Refresh"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Select"},
		{Key: "Enter", Description: "Take test"},
		{Key: "V", Description: "Toggle visibility"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		return s.handleSetsLoaded(msg)
	case toggledMsg:
		return s.handleToggled(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *SetsScreen) handleSetsLoaded(msg setsLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		if errors.Is(msg.Err, identity.ErrLoginRequired) {
			s.loginRequired = true
			return s, nil
		}
		s.errMsg = fmt.Sprintf("Could not load question sets: %v", msg.Err)
		return s, nil
	}

	s.loginRequired = false
	s.errMsg = ""
	if s.cursor >= len(msg.Sets) {
		s.cursor = 0
	}
	return s, nil
}

func (s *SetsScreen) handleToggled(msg toggledMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, api.ErrForbidden):
			s.errMsg = "Only the owner can change a set's visibility."
		case errors.Is(msg.Err, api.ErrUnauthenticated):
			s.errMsg = "Your sign-in has expired. Sign in again."
		default:
			s.errMsg = fmt.Sprintf("Could not change visibility: %v", msg.Err)
		}
		return s, nil
	}
	s.errMsg = ""
	return s, nil
}

func (s *SetsScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if key == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if key == "r" || key == "R" {
		return s, s.refresh()
	}
	if s.loading || s.loginRequired {
		return s, nil
	}

	setList := s.dir.Sets()
	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(setList)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor < len(setList) {
			selected := setList[s.cursor]
			return s, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: sessionscreen.New(s.client, s.gate, s.cache, selected),
				}
			}
		}
	case "v", "V":
		if s.cursor < len(setList) {
			return s, s.toggle(setList[s.cursor].ID)
		}
	}
	return s, nil
}

func (s *SetsScreen) refresh() tea.Cmd {
	s.loading = true
	s.errMsg = ""
	dir := s.dir
	return func() tea.Msg {
		setList, err := dir.Refresh(context.Background())
		return setsLoadedMsg{Sets: setList, Err: err}
	}
}

func (s *SetsScreen) toggle(setID string) tea.Cmd {
	dir := s.dir
	return func() tea.Msg {
		return toggledMsg{Err: dir.Toggle(context.Background(), setID)}
	}
}

func (s *SetsScreen) View(width, height int) string {
	if s.loading {
		return centered(width, theme.Hint.Render("\n\n  Loading question sets..."))
	}
	if s.loginRequired {
		return centered(width,
			theme.Body.Render("\n\nSign in to see your question sets.")+
				"\n"+theme.Hint.Render("Go back and choose SIGN IN from the menu."))
	}

	setList := s.dir.Sets()
	if len(setList) == 0 {
		var b strings.Builder
		b.WriteString(centered(width, theme.Hint.Render("\n\n  No question sets yet.")))
		if s.errMsg != "" {
			b.WriteString("\n\n")
			b.WriteString(centered(width, theme.Incorrect.Render(s.errMsg)))
		}
		return b.String()
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, qs := range setList {
		b.WriteString(s.renderRow(qs, i == s.cursor, width))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Incorrect.Render(s.errMsg)))
	}
	return b.String()
}

// renderRow renders one set line: name, owner, visibility tag, and the
// score of an earlier attempt this run when one is cached.
func (s *SetsScreen) renderRow(qs api.QuestionSet, focused bool, width int) string {
	prefix := "    "
	style := theme.Unselected
	if focused {
		prefix = "  > "
		style = theme.Selected
	}

	visibility := "[private]"
	visStyle := theme.Hint
	if qs.Visibility == api.VisibilityPublic {
		visibility = "[public]"
		visStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	}

	left := style.Render(prefix+qs.Name) + " " + visStyle.Render(visibility)
	if qs.Owner != "" {
		left += " " + theme.Hint.Render("by "+qs.Owner)
	}

	var right string
	if result, ok := s.cache.Get(qs.ID); ok {
		right = theme.Correct.Render(fmt.Sprintf("scored %d/%d", result.Correct, result.Total))
	}

	rightPad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if right != "" && rightPad > 0 {
		return left + strings.Repeat(" ", rightPad) + right
	}
	return left
}

func centered(width int, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}
