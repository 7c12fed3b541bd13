package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/minhvu/quizdeck/internal/api"
	"github.com/minhvu/quizdeck/internal/identity"
	"github.com/minhvu/quizdeck/internal/router"
	"github.com/minhvu/quizdeck/internal/screen"
	sess "github.com/minhvu/quizdeck/internal/session"
	"github.com/minhvu/quizdeck/internal/ui/layout"
)

// API is the slice of the HTTP client the session screen needs.
type API interface {
	QuestionDetails(ctx context.Context, setID string) ([]api.Question, error)
	SubmitTest(ctx context.Context, token, setID string, sub api.Submission) (*api.SubmitResult, error)
}

// SessionScreen runs one timed test attempt for a chosen set.
type SessionScreen struct {
	client API
	gate   identity.Gate
	ctrl   *sess.Controller
	set    api.QuestionSet

	cursor   int // focused question index
	selected int // focused option index within the question
	errMsg   string
	loadErr  bool

	// ticking is true while a tea.Tick chain is in flight. At most one
	// chain may exist per screen or the counter runs fast; the chain
	// survives Submitting and only ends when a tick arrives with the
	// controller's timer off.
	ticking bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.Closer = (*SessionScreen)(nil)

// New creates a SessionScreen for one set. The cache is shared across
// screens so a reselected set can show its prior score.
func New(client API, gate identity.Gate, cache *sess.Cache, set api.QuestionSet) *SessionScreen {
	return &SessionScreen{
		client: client,
		gate:   gate,
		ctrl:   sess.NewController(cache),
		set:    set,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.loadQuestions(s.ctrl.Select(s.set.ID))
}

func (s *SessionScreen) Title() string {
	return "Test: " + s.set.Name
}

// Close stops the timer and discards the session when the screen leaves
// the stack.
func (s *SessionScreen) Close() {
	s.ctrl.Reset()
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch s.ctrl.State() {
	case sess.StateReady:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Option"},
			{Key: "Enter", Description: "Choose"},
			{Key: "←→", Description: "Question"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Leave"},
		}
	case sess.StateScored:
		return []layout.KeyHint{
			{Key: "T", Description: "Retake"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleQuestionsLoaded(msg)

	case timerTickMsg:
		s.ctrl.Tick()
		if s.ctrl.TimerRunning() {
			return s, tickCmd()
		}
		s.ticking = false
		return s, nil

	case submitResultMsg:
		return s.handleSubmitResult(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *SessionScreen) handleQuestionsLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if s.ctrl.LoadFailed(msg.Token) {
			s.loadErr = true
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}

	if !s.ctrl.QuestionsLoaded(msg.Token, msg.Questions) {
		// Stale response for an abandoned load.
		return s, nil
	}

	s.cursor = 0
	s.selected = 0
	if s.ctrl.TimerRunning() && !s.ticking {
		s.ticking = true
		return s, tickCmd()
	}
	return s, nil
}

func (s *SessionScreen) handleSubmitResult(msg submitResultMsg) (screen.Screen, tea.Cmd) {
	if s.ctrl.State() != sess.StateSubmitting {
		return s, nil
	}

	if msg.Err != nil {
		// Do not schedule a tick here: the chain started when the
		// questions loaded is still rescheduling itself through
		// Submitting, and a second chain would double the tick rate.
		s.ctrl.SubmitFailed()
		switch {
		case errors.Is(msg.Err, api.ErrUnauthenticated):
			s.errMsg = "Your sign-in has expired. Sign in again, your answers are kept."
		default:
			s.errMsg = fmt.Sprintf("Submission failed: %v. Press S to retry.", msg.Err)
		}
		return s, nil
	}

	s.errMsg = ""
	s.ctrl.SubmitAccepted(msg.Result)
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "esc" {
		s.ctrl.Reset()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.ctrl.State() {
	case sess.StateIdle:
		// Load failed; allow a retry without leaving the screen.
		if s.loadErr && (key == "r" || key == "R") {
			s.loadErr = false
			s.errMsg = ""
			return s, s.loadQuestions(s.ctrl.Select(s.set.ID))
		}

	case sess.StateReady:
		return s.handleReadyKey(key)

	case sess.StateScored:
		if key == "t" || key == "T" {
			s.errMsg = ""
			s.cursor = 0
			s.selected = 0
			return s, s.loadQuestions(s.ctrl.Retake())
		}
	}

	return s, nil
}

func (s *SessionScreen) handleReadyKey(key string) (screen.Screen, tea.Cmd) {
	questions := s.ctrl.Questions()
	if len(questions) == 0 {
		return s, nil
	}
	q := questions[s.cursor]

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(q.Answers)-1 {
			s.selected++
		}
	case "enter", " ":
		if s.selected < len(q.Answers) {
			s.ctrl.SetAnswer(q.ID, q.Answers[s.selected].ID)
			s.nextQuestion()
		}
	case "left", "p":
		if s.cursor > 0 {
			s.cursor--
			s.syncSelected()
		}
	case "right", "n":
		s.nextQuestion()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < len(q.Answers) {
			s.ctrl.SetAnswer(q.ID, q.Answers[idx].ID)
			s.selected = idx
			s.nextQuestion()
		}
	case "s", "S":
		return s.submit()
	}

	return s, nil
}

// nextQuestion advances the focus, stopping at the last question.
func (s *SessionScreen) nextQuestion() {
	if s.cursor < len(s.ctrl.Questions())-1 {
		s.cursor++
		s.syncSelected()
	}
}

// syncSelected points the option focus at the captured answer of the
// focused question, if one exists.
func (s *SessionScreen) syncSelected() {
	s.selected = 0
	q := s.ctrl.Questions()[s.cursor]
	chosen, ok := s.ctrl.Answer(q.ID)
	if !ok {
		return
	}
	for i, opt := range q.Answers {
		if opt.ID == chosen {
			s.selected = i
			return
		}
	}
}

// submit validates locally and, if complete, sends the answers for scoring.
// Incomplete captures never reach the network.
func (s *SessionScreen) submit() (screen.Screen, tea.Cmd) {
	sub, err := s.ctrl.BeginSubmit()
	if err != nil {
		var valErr *sess.ValidationError
		if errors.As(err, &valErr) {
			s.errMsg = fmt.Sprintf("Cannot submit: %s.", valErr.Error())
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}

	s.errMsg = ""
	token, ok := s.gate.Credential()
	if !ok {
		// Submitting needs a credential even though loading did not.
		// The running tick chain survives the failed attempt; starting
		// another here would double the tick rate.
		s.ctrl.SubmitFailed()
		s.errMsg = "Sign in to submit your answers."
		return s, nil
	}

	setID := s.set.ID
	client := s.client
	return s, func() tea.Msg {
		result, err := client.SubmitTest(context.Background(), token, setID, sub)
		return submitResultMsg{Result: result, Err: err}
	}
}

// loadQuestions fetches the set's questions asynchronously, tagged with the
// controller's load token.
func (s *SessionScreen) loadQuestions(tok sess.LoadToken) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		questions, err := client.QuestionDetails(context.Background(), tok.SetID)
		return questionsLoadedMsg{Token: tok, Questions: questions, Err: err}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
