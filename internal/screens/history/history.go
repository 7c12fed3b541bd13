// Package history is the test-history screen: past attempts grouped by
// set name, each expandable into a per-question answer review.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/quizdeck/internal/api"
	"github.com/minhvu/quizdeck/internal/history"
	"github.com/minhvu/quizdeck/internal/identity"
	"github.com/minhvu/quizdeck/internal/router"
	"github.com/minhvu/quizdeck/internal/screen"
	sess "github.com/minhvu/quizdeck/internal/session"
	"github.com/minhvu/quizdeck/internal/ui/layout"
	"github.com/minhvu/quizdeck/internal/ui/theme"
)

type historyLoadedMsg struct {
	Records []api.HistoryRecord
	Err     error
}

// HistoryScreen displays completed attempts grouped by set name.
type HistoryScreen struct {
	agg       *history.Aggregator
	groups    []history.Group
	flat      []api.HistoryRecord // cursor order: group by group
	expansion *history.Expansion

	cursor        int
	loaded        bool
	loginRequired bool
	errMsg        string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen.
func New(agg *history.Aggregator) *HistoryScreen {
	return &HistoryScreen{
		agg:       agg,
		expansion: history.NewExpansion(),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	agg := s.agg
	return func() tea.Msg {
		records, err := agg.Fetch(context.Background())
		return historyLoadedMsg{Records: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Test History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Select"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			if errors.Is(msg.Err, identity.ErrLoginRequired) {
				s.loginRequired = true
			} else {
				s.errMsg = fmt.Sprintf("Could not load test history: %v", msg.Err)
			}
			return s, nil
		}
		s.groups = history.GroupBySetName(msg.Records)
		s.flat = s.flat[:0]
		for _, g := range s.groups {
			s.flat = append(s.flat, g.Records...)
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.flat)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(s.flat) {
				s.expansion.Toggle(s.flat[s.cursor].TestID)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case !s.loaded:
		return centered(width, theme.Hint.Render("\n\n  Loading test history..."))
	case s.loginRequired:
		return centered(width,
			theme.Body.Render("\n\nSign in to see your test history.")+
				"\n"+theme.Hint.Render("Go back and choose SIGN IN from the menu."))
	case s.errMsg != "":
		return centered(width, theme.Incorrect.Render("\n\n"+s.errMsg))
	case len(s.flat) == 0:
		return centered(width, theme.Hint.Render("\n\n  No completed tests yet."))
	}

	var b strings.Builder
	b.WriteString("\n")

	i := 0
	for _, g := range s.groups {
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(g.SetName))
		b.WriteString("\n")
		for _, r := range g.Records {
			b.WriteString(s.renderRecord(r, i == s.cursor))
			i++
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderRecord renders one attempt line and, when expanded, its
// per-question answer review.
func (s *HistoryScreen) renderRecord(r api.HistoryRecord, focused bool) string {
	prefix := "    "
	style := theme.Unselected
	if focused {
		prefix = "  > "
		style = theme.Selected
	}

	marker := "▸"
	if s.expansion.Expanded(r.TestID) {
		marker = "▾"
	}

	line := style.Render(fmt.Sprintf("%s%s %s", prefix, marker, r.CompletedAt.Format("Jan 2, 2006 15:04"))) +
		"  " + theme.Correct.Render(fmt.Sprintf("%d/%d", r.SumCorrect, r.TotalQuestions)) +
		"  " + theme.Hint.Render("in "+sess.FormatElapsed(r.TimeSpent)) + "\n"

	if !s.expansion.Expanded(r.TestID) {
		return line
	}

	var b strings.Builder
	b.WriteString(line)
	for i, a := range r.Answers {
		b.WriteString(renderAnswer(i, a))
	}
	b.WriteString("\n")
	return b.String()
}

// renderAnswer shows one reviewed question: a correct/incorrect mark, the
// expected answer when the attempt missed it, and every option with the
// correct one highlighted.
func renderAnswer(i int, a api.AnswerRecord) string {
	var b strings.Builder

	mark := theme.Correct.Render("✓")
	if !a.IsCorrect {
		mark = theme.Incorrect.Render("✗")
	}
	b.WriteString(fmt.Sprintf("      %s %s\n", mark,
		theme.Body.Render(fmt.Sprintf("%d. %s", i+1, a.QuestionText))))

	if !a.IsCorrect {
		b.WriteString("        ")
		b.WriteString(theme.Hint.Render("Correct answer: " + a.CorrectAnswer))
		b.WriteString("\n")
	}

	for _, opt := range a.Answers {
		style := theme.Hint
		bullet := "·"
		if opt.Text == a.CorrectAnswer {
			style = theme.Correct
			bullet = "●"
		}
		b.WriteString("        ")
		b.WriteString(style.Render(fmt.Sprintf("%s %s", bullet, opt.Text)))
		b.WriteString("\n")
	}
	return b.String()
}

func centered(width int, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}
