package session

import (
	"errors"
	"testing"

	"github.com/minhvu/quizdeck/internal/api"
)

func testQuestions() []api.Question {
	return []api.Question{
		{ID: "q1", Text: "2+2?", Answers: []api.AnswerOption{{ID: "a1", Text: "3"}, {ID: "a2", Text: "4"}}},
		{ID: "q2", Text: "3*3?", Answers: []api.AnswerOption{{ID: "a3", Text: "9"}, {ID: "a4", Text: "6"}}},
		{ID: "q3", Text: "10/2?", Answers: []api.AnswerOption{{ID: "a5", Text: "5"}, {ID: "a6", Text: "2"}}},
	}
}

// readyController returns a controller in Ready for set s1.
func readyController(t *testing.T) *Controller {
	t.Helper()
	c := NewController(NewCache())
	tok := c.Select("s1")
	if !c.QuestionsLoaded(tok, testQuestions()) {
		t.Fatal("expected load to be accepted")
	}
	if c.State() != StateReady {
		t.Fatalf("state = %s, want ready", c.State())
	}
	return c
}

func answerAll(c *Controller) {
	c.SetAnswer("q1", "a2")
	c.SetAnswer("q2", "a3")
	c.SetAnswer("q3", "a5")
}

func TestSelect_StartsLoading(t *testing.T) {
	c := NewController(NewCache())
	tok := c.Select("s1")

	if c.State() != StateLoading {
		t.Errorf("state = %s, want loading", c.State())
	}
	if tok.SetID != "s1" || tok.ID == "" {
		t.Errorf("token = %+v, want tagged with s1 and a request id", tok)
	}
	if c.Elapsed() != 0 {
		t.Errorf("elapsed = %d, want 0 for a set without cached result", c.Elapsed())
	}
}

func TestQuestionsLoaded_StaleTokenIgnored(t *testing.T) {
	c := NewController(NewCache())
	stale := c.Select("s1")
	fresh := c.Select("s2")

	// The response for the abandoned set must not mutate state.
	if c.QuestionsLoaded(stale, testQuestions()) {
		t.Error("expected stale response to be rejected")
	}
	if c.State() != StateLoading {
		t.Errorf("state = %s, want loading for s2", c.State())
	}

	if !c.QuestionsLoaded(fresh, testQuestions()) {
		t.Error("expected current response to be accepted")
	}
	if c.SetID() != "s2" {
		t.Errorf("set = %s, want s2", c.SetID())
	}
}

func TestQuestionsLoaded_SecondDeliveryIgnored(t *testing.T) {
	c := NewController(NewCache())
	tok := c.Select("s1")

	if !c.QuestionsLoaded(tok, testQuestions()) {
		t.Fatal("first delivery should be accepted")
	}
	if c.QuestionsLoaded(tok, nil) {
		t.Error("second delivery of the same token should be rejected")
	}
}

func TestTimer_TicksOnlyWhileReady(t *testing.T) {
	c := readyController(t)

	if !c.TimerRunning() {
		t.Fatal("timer should run in Ready")
	}
	c.Tick()
	c.Tick()
	if c.Elapsed() != 2 {
		t.Errorf("elapsed = %d, want 2", c.Elapsed())
	}

	c.CancelTimer()
	c.Tick()
	if c.Elapsed() != 2 {
		t.Errorf("elapsed = %d after cancel, want 2", c.Elapsed())
	}
}

func TestBeginSubmit_RejectsIncompleteCapture(t *testing.T) {
	c := readyController(t)
	c.SetAnswer("q1", "a2")
	c.SetAnswer("q2", "a3")

	_, err := c.BeginSubmit()
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if valErr.Missing != 1 {
		t.Errorf("missing = %d, want 1", valErr.Missing)
	}
	if valErr.Error() != "1 question unanswered" {
		t.Errorf("message = %q", valErr.Error())
	}
	if c.State() != StateReady {
		t.Errorf("state = %s, want ready (no transition on validation failure)", c.State())
	}
}

func TestBeginSubmit_MissingCountMatchesGap(t *testing.T) {
	c := readyController(t)

	_, err := c.BeginSubmit()
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	// N questions, zero captured: the count equals N.
	if valErr.Missing != 3 {
		t.Errorf("missing = %d, want 3", valErr.Missing)
	}
}

func TestSubmitFlow_Scored(t *testing.T) {
	c := readyController(t)
	answerAll(c)
	for i := 0; i < 125; i++ {
		c.Tick()
	}

	sub, err := c.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if c.State() != StateSubmitting {
		t.Errorf("state = %s, want submitting", c.State())
	}
	if sub.TimeSpent != 125 {
		t.Errorf("time_spent = %d, want 125", sub.TimeSpent)
	}
	if len(sub.Answers) != 3 {
		t.Fatalf("answers = %d, want 3", len(sub.Answers))
	}
	// One entry per question, in question order.
	if sub.Answers[0].QuestionID != "q1" || sub.Answers[0].AnswerID != "a2" {
		t.Errorf("answers[0] = %+v", sub.Answers[0])
	}

	c.SubmitAccepted(&api.SubmitResult{Success: true, Score: 2, TotalQuestions: 3})

	if c.State() != StateScored {
		t.Errorf("state = %s, want scored", c.State())
	}
	if c.TimerRunning() {
		t.Error("timer should stop on scoring")
	}
	got, ok := c.Result()
	if !ok {
		t.Fatal("expected a result")
	}
	want := Result{Correct: 2, Total: 3, ElapsedSeconds: 125}
	if got != want {
		t.Errorf("result = %+v, want %+v", got, want)
	}
}

func TestSubmitFailed_ReturnsToReadyIntact(t *testing.T) {
	c := readyController(t)
	answerAll(c)
	for i := 0; i < 40; i++ {
		c.Tick()
	}

	if _, err := c.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	c.SubmitFailed()

	if c.State() != StateReady {
		t.Errorf("state = %s, want ready", c.State())
	}
	if c.Elapsed() != 40 {
		t.Errorf("elapsed = %d, want 40 (preserved for retry)", c.Elapsed())
	}
	if id, ok := c.Answer("q2"); !ok || id != "a3" {
		t.Errorf("answer q2 = %q, %v, want preserved a3", id, ok)
	}

	// Resubmit without re-answering.
	if _, err := c.BeginSubmit(); err != nil {
		t.Errorf("resubmit: %v", err)
	}
}

func TestReselect_CachedResultSkipsAnswerPhase(t *testing.T) {
	cache := NewCache()
	c := NewController(cache)
	tok := c.Select("s1")
	c.QuestionsLoaded(tok, testQuestions())
	answerAll(c)
	for i := 0; i < 65; i++ {
		c.Tick()
	}
	if _, err := c.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	c.SubmitAccepted(&api.SubmitResult{Success: true, Score: 3, TotalQuestions: 3})

	// Reselect: counter resumes at the prior value, and load lands in
	// Scored without any submission.
	c2 := NewController(cache)
	tok2 := c2.Select("s1")
	if c2.Elapsed() != 65 {
		t.Errorf("elapsed = %d, want cached 65", c2.Elapsed())
	}
	c2.QuestionsLoaded(tok2, testQuestions())

	if c2.State() != StateScored {
		t.Fatalf("state = %s, want scored", c2.State())
	}
	if !c2.ResultFromCache() {
		t.Error("expected result to be marked as cached")
	}
	got, _ := c2.Result()
	if got != (Result{Correct: 3, Total: 3, ElapsedSeconds: 65}) {
		t.Errorf("result = %+v", got)
	}
	if c2.TimerRunning() {
		t.Error("timer must not run in cached Scored")
	}
}

func TestRetake_DropsCacheAndRestarts(t *testing.T) {
	cache := NewCache()
	cache.Put("s1", Result{Correct: 2, Total: 3, ElapsedSeconds: 90})

	c := NewController(cache)
	tok := c.Select("s1")
	c.QuestionsLoaded(tok, testQuestions())
	if c.State() != StateScored {
		t.Fatalf("state = %s, want scored from cache", c.State())
	}

	tok2 := c.Retake()
	if c.State() != StateLoading {
		t.Errorf("state = %s, want loading", c.State())
	}
	if c.Elapsed() != 0 {
		t.Errorf("elapsed = %d, want 0 after retake", c.Elapsed())
	}
	if _, ok := cache.Get("s1"); ok {
		t.Error("expected cached result to be dropped")
	}

	c.QuestionsLoaded(tok2, testQuestions())
	if c.State() != StateReady {
		t.Errorf("state = %s, want ready for the fresh attempt", c.State())
	}
}

func TestReset_FromAnyState(t *testing.T) {
	c := readyController(t)
	answerAll(c)
	c.Tick()

	c.Reset()

	if c.State() != StateIdle {
		t.Errorf("state = %s, want idle", c.State())
	}
	if c.TimerRunning() {
		t.Error("timer must stop on reset")
	}
	if c.Elapsed() != 0 {
		t.Errorf("elapsed = %d, want 0", c.Elapsed())
	}
	if _, ok := c.Answer("q1"); ok {
		t.Error("captured answers must be discarded")
	}
}

func TestSetAnswer_ReplacesPriorChoice(t *testing.T) {
	c := readyController(t)
	c.SetAnswer("q1", "a1")
	c.SetAnswer("q1", "a2")

	if id, _ := c.Answer("q1"); id != "a2" {
		t.Errorf("answer = %s, want a2", id)
	}
	if c.Unanswered() != 2 {
		t.Errorf("unanswered = %d, want 2", c.Unanswered())
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{65, "1:05"},
		{125, "2:05"},
		{599, "9:59"},
		{600, "10:00"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.seconds); got != tt.want {
			t.Errorf("FormatElapsed(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
