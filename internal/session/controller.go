package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/minhvu/quizdeck/internal/api"
)

// LoadToken tags one outstanding question fetch with the set it was issued
// for. A response is applied only if its token still matches the
// controller's current load, which guards against a stale response mutating
// state after the user switched sets.
type LoadToken struct {
	SetID string
	ID    string
}

// ValidationError reports a submit attempt with unanswered questions.
// It is produced locally; no network call is made.
type ValidationError struct {
	Missing int
}

func (e *ValidationError) Error() string {
	if e.Missing == 1 {
		return "1 question unanswered"
	}
	return fmt.Sprintf("%d questions unanswered", e.Missing)
}

// Controller drives exactly one timed test session per active set
// selection. It is a plain state machine: all I/O and scheduling stay with
// the caller, which feeds results back in and is told whether they still
// apply. The timer is an explicit handle: the caller starts ticking when
// TimerRunning reports true and must stop when it reports false.
type Controller struct {
	cache *Cache

	state     State
	setID     string
	pending   LoadToken
	questions []api.Question
	answers   map[string]string // question id → chosen answer id
	elapsed   int
	timerOn   bool

	result    Result
	hasResult bool
	fromCache bool
	timeSpent int
}

// NewController creates an idle controller sharing the given result cache.
func NewController(cache *Cache) *Controller {
	return &Controller{
		cache:   cache,
		state:   StateIdle,
		answers: make(map[string]string),
	}
}

// State returns the current session state.
func (c *Controller) State() State { return c.state }

// SetID returns the id of the selected set, or "" when idle.
func (c *Controller) SetID() string { return c.setID }

// Questions returns the loaded questions of the active set.
func (c *Controller) Questions() []api.Question { return c.questions }

// Elapsed returns the elapsed seconds of the active session.
func (c *Controller) Elapsed() int { return c.elapsed }

// Result returns the session result once the state is Scored.
func (c *Controller) Result() (Result, bool) { return c.result, c.hasResult }

// ResultFromCache reports whether the Scored state shows a cached prior
// result rather than a fresh submission.
func (c *Controller) ResultFromCache() bool { return c.fromCache }

// Select starts a session for the given set: any current session is
// discarded, the elapsed counter restarts (at the cached prior value when
// the set was already completed this run), and a tagged load begins.
// The returned token must accompany the fetched questions.
func (c *Controller) Select(setID string) LoadToken {
	c.Reset()

	c.setID = setID
	c.state = StateLoading
	if prior, ok := c.cache.Get(setID); ok {
		c.elapsed = prior.ElapsedSeconds
	}
	c.pending = LoadToken{SetID: setID, ID: uuid.New().String()}
	return c.pending
}

// QuestionsLoaded applies a fetched question payload. It returns false when
// the token no longer matches the current load; the response is stale and
// must be ignored. A set with a cached result transitions straight to
// Scored; the answer phase is skipped until an explicit retake.
func (c *Controller) QuestionsLoaded(tok LoadToken, questions []api.Question) bool {
	if !c.accepts(tok) {
		return false
	}
	c.pending = LoadToken{}
	c.questions = questions

	if prior, ok := c.cache.Get(c.setID); ok {
		c.result = prior
		c.hasResult = true
		c.fromCache = true
		c.state = StateScored
		return true
	}

	c.state = StateReady
	c.StartTimer()
	return true
}

// LoadFailed records a failed question fetch. Returns false for stale
// tokens. The session returns to Idle; the user retries by reselecting.
func (c *Controller) LoadFailed(tok LoadToken) bool {
	if !c.accepts(tok) {
		return false
	}
	c.pending = LoadToken{}
	c.state = StateIdle
	return true
}

// accepts reports whether tok matches the outstanding load.
func (c *Controller) accepts(tok LoadToken) bool {
	return c.state == StateLoading && tok == c.pending && tok.SetID == c.setID
}

// StartTimer enables the elapsed-seconds counter.
func (c *Controller) StartTimer() { c.timerOn = true }

// CancelTimer disables the elapsed-seconds counter. It must be called
// whenever the session leaves Ready, and on teardown.
func (c *Controller) CancelTimer() { c.timerOn = false }

// TimerRunning reports whether the caller should keep ticking.
func (c *Controller) TimerRunning() bool { return c.timerOn }

// Tick advances the elapsed counter by one second. Ticks arriving outside
// Ready (or after cancellation) are dropped.
func (c *Controller) Tick() {
	if c.timerOn && c.state == StateReady {
		c.elapsed++
	}
}

// SetAnswer captures the chosen answer for a question, replacing any prior
// choice. Ignored outside Ready.
func (c *Controller) SetAnswer(questionID, answerID string) {
	if c.state != StateReady {
		return
	}
	c.answers[questionID] = answerID
}

// Answer returns the captured answer id for a question.
func (c *Controller) Answer(questionID string) (string, bool) {
	id, ok := c.answers[questionID]
	return id, ok
}

// Unanswered counts questions without a captured answer.
func (c *Controller) Unanswered() int {
	missing := 0
	for _, q := range c.questions {
		if _, ok := c.answers[q.ID]; !ok {
			missing++
		}
	}
	return missing
}

// BeginSubmit validates the captured answers and, if complete, freezes the
// elapsed time and transitions to Submitting, returning the payload to send.
// With unanswered questions it returns a ValidationError and stays in Ready.
func (c *Controller) BeginSubmit() (api.Submission, error) {
	if c.state != StateReady {
		return api.Submission{}, fmt.Errorf("cannot submit in state %s", c.state)
	}
	if missing := c.Unanswered(); missing > 0 {
		return api.Submission{}, &ValidationError{Missing: missing}
	}

	sub := api.Submission{
		Answers:   make([]api.SubmittedAnswer, 0, len(c.questions)),
		TimeSpent: c.elapsed,
	}
	for _, q := range c.questions {
		sub.Answers = append(sub.Answers, api.SubmittedAnswer{
			QuestionID: q.ID,
			AnswerID:   c.answers[q.ID],
		})
	}

	c.timeSpent = c.elapsed
	c.state = StateSubmitting
	return sub, nil
}

// SubmitAccepted applies the server's score: the timer stops, the result is
// stored in the cache under the set id, and the state becomes Scored.
func (c *Controller) SubmitAccepted(res *api.SubmitResult) {
	if c.state != StateSubmitting {
		return
	}
	c.CancelTimer()
	c.result = Result{
		Correct:        res.Score,
		Total:          res.TotalQuestions,
		ElapsedSeconds: c.timeSpent,
	}
	c.hasResult = true
	c.fromCache = false
	c.cache.Put(c.setID, c.result)
	c.state = StateScored
}

// SubmitFailed returns the session to Ready after a transport or server
// failure. Captured answers and elapsed time stay intact for a resubmit.
func (c *Controller) SubmitFailed() {
	if c.state != StateSubmitting {
		return
	}
	c.state = StateReady
	c.StartTimer()
}

// Retake discards the cached result for the current set and starts a fresh
// attempt from zero.
func (c *Controller) Retake() LoadToken {
	setID := c.setID
	c.cache.Drop(setID)
	return c.Select(setID)
}

// Reset returns the controller to Idle from any state: the timer stops, the
// outstanding load (if any) is invalidated, and captured answers are gone.
func (c *Controller) Reset() {
	c.CancelTimer()
	c.state = StateIdle
	c.setID = ""
	c.pending = LoadToken{}
	c.questions = nil
	c.answers = make(map[string]string)
	c.elapsed = 0
	c.result = Result{}
	c.hasResult = false
	c.fromCache = false
	c.timeSpent = 0
}
