package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/minhvu/quizdeck/internal/session"
	"github.com/minhvu/quizdeck/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch s.ctrl.State() {
	case sess.StateLoading:
		return centered(width, theme.Hint.Render("\n\n  Loading questions..."))
	case sess.StateReady:
		return s.renderQuestionView(width)
	case sess.StateSubmitting:
		return centered(width, theme.Hint.Render("\n\n  Submitting answers..."))
	case sess.StateScored:
		return s.renderScoreView(width)
	default:
		if s.loadErr {
			return centered(width,
				theme.Incorrect.Render("\n\nCould not load the test.")+
					"\n"+theme.Hint.Render(s.errMsg)+
					"\n\n"+theme.Body.Render("Press R to retry, Esc to go back."))
		}
		return ""
	}
}

// renderQuestionView shows the focused question, its options, and the
// session header line with progress and the running timer.
func (s *SessionScreen) renderQuestionView(width int) string {
	questions := s.ctrl.Questions()
	if len(questions) == 0 {
		return centered(width, theme.Hint.Render("\n\n  This set has no questions."))
	}
	q := questions[s.cursor]

	var b strings.Builder

	answered := len(questions) - s.ctrl.Unanswered()
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.set.Name)
	infoRight := theme.Hint.Render(fmt.Sprintf("Answered %d/%d   Time %s",
		answered, len(questions), sess.FormatElapsed(s.ctrl.Elapsed())))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d\n%s", s.cursor+1, len(questions), q.Text))
	b.WriteString(question)
	b.WriteString("\n\n")

	chosen, _ := s.ctrl.Answer(q.ID)
	for i, opt := range q.Answers {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		marker := "( )"
		if opt.ID == chosen {
			marker = "(x)"
		}
		line := fmt.Sprintf("  %s%s %d) %s", prefix, marker, i+1, opt.Text)

		style := theme.Unselected
		if i == s.selected {
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Incorrect.Render(s.errMsg)))
	}

	return b.String()
}

// renderScoreView shows the session result, cached or fresh.
func (s *SessionScreen) renderScoreView(width int) string {
	result, ok := s.ctrl.Result()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Title.Render("Test complete")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Correct.Render(
		fmt.Sprintf("Correct: %d/%d", result.Correct, result.Total))))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Body.Render(
		"Time: "+sess.FormatElapsed(result.ElapsedSeconds))))
	if s.ctrl.ResultFromCache() {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Hint.Render(
			"Score from your previous attempt this run. Press T to retake.")))
	}
	return b.String()
}

func centered(width int, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}
