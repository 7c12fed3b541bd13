package sets

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/minhvu/quizdeck/internal/api"
	"github.com/minhvu/quizdeck/internal/directory"
	"github.com/minhvu/quizdeck/internal/router"
	sessionscreen "github.com/minhvu/quizdeck/internal/screens/session"
	sess "github.com/minhvu/quizdeck/internal/session"
)

type fakeLister struct {
	sets      []api.QuestionSet
	toggleErr error
	toggled   []string
}

func (f *fakeLister) ListSets(_ context.Context, _ string) ([]api.QuestionSet, error) {
	return f.sets, nil
}

func (f *fakeLister) ToggleVisibility(_ context.Context, _, setID string) (*api.ToggleResult, error) {
	if f.toggleErr != nil {
		return nil, f.toggleErr
	}
	f.toggled = append(f.toggled, setID)
	return &api.ToggleResult{Status: "ok"}, nil
}

type fakeSessionAPI struct{}

func (fakeSessionAPI) QuestionDetails(_ context.Context, _ string) ([]api.Question, error) {
	return nil, nil
}

func (fakeSessionAPI) SubmitTest(_ context.Context, _, _ string, _ api.Submission) (*api.SubmitResult, error) {
	return nil, nil
}

type fakeGate struct {
	token string
}

func (g *fakeGate) IsLoggedIn() bool { return g.token != "" }
func (g *fakeGate) Identity() string { return "an" }
func (g *fakeGate) Credential() (string, bool) {
	if g.token == "" {
		return "", false
	}
	return g.token, true
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testSets() []api.QuestionSet {
	return []api.QuestionSet{
		{ID: "s1", Name: "Math101", Owner: "an", Visibility: api.VisibilityPrivate},
		{ID: "s2", Name: "History", Owner: "binh", Visibility: api.VisibilityPublic},
	}
}

// loadedScreen runs the refresh flow against the fake and returns the screen.
func loadedScreen(t *testing.T, lister *fakeLister, gate *fakeGate) *SetsScreen {
	t.Helper()
	dir := directory.New(lister, gate)
	s := New(dir, fakeSessionAPI{}, gate, sess.NewCache())
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init should issue a refresh command")
	}
	s.Update(cmd())
	return s
}

func TestRefresh_PopulatesList(t *testing.T) {
	s := loadedScreen(t, &fakeLister{sets: testSets()}, &fakeGate{token: "tok"})

	view := s.View(80, 24)
	if !strings.Contains(view, "Math101") || !strings.Contains(view, "History") {
		t.Errorf("view missing set names:\n%s", view)
	}
	if !strings.Contains(view, "[private]") || !strings.Contains(view, "[public]") {
		t.Errorf("view missing visibility tags:\n%s", view)
	}
}

func TestRefresh_WithoutCredentialShowsSignIn(t *testing.T) {
	s := loadedScreen(t, &fakeLister{sets: testSets()}, &fakeGate{})

	if !s.loginRequired {
		t.Fatal("expected login-required state")
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "Sign in") {
		t.Errorf("view missing sign-in prompt:\n%s", view)
	}
}

func TestEnter_PushesSessionScreen(t *testing.T) {
	s := loadedScreen(t, &fakeLister{sets: testSets()}, &fakeGate{token: "tok"})

	s.Update(keyPress('j'))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should issue a push command")
	}
	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("msg = %T, want router.PushScreenMsg", msg)
	}
	if _, ok := push.Screen.(*sessionscreen.SessionScreen); !ok {
		t.Fatalf("pushed screen = %T, want *session.SessionScreen", push.Screen)
	}
}

func TestToggle_FlipsSelectedSet(t *testing.T) {
	lister := &fakeLister{sets: testSets()}
	s := loadedScreen(t, lister, &fakeGate{token: "tok"})

	_, cmd := s.Update(keyPress('v'))
	if cmd == nil {
		t.Fatal("v should issue a toggle command")
	}
	s.Update(cmd())

	if len(lister.toggled) != 1 || lister.toggled[0] != "s1" {
		t.Errorf("toggled = %v, want [s1]", lister.toggled)
	}
	// The in-memory list flipped without a refetch.
	if got := s.dir.Sets()[0].Visibility; got != api.VisibilityPublic {
		t.Errorf("visibility = %q, want public", got)
	}
	if got := s.dir.Sets()[1].Visibility; got != api.VisibilityPublic {
		t.Errorf("other set visibility = %q, want untouched public", got)
	}
}

func TestToggle_ForbiddenShowsOwnerMessage(t *testing.T) {
	lister := &fakeLister{sets: testSets(), toggleErr: api.ErrForbidden}
	s := loadedScreen(t, lister, &fakeGate{token: "tok"})

	_, cmd := s.Update(keyPress('v'))
	s.Update(cmd())

	if !strings.Contains(s.errMsg, "owner") {
		t.Errorf("errMsg = %q, want owner-only message", s.errMsg)
	}
}

func TestCachedScoreShownOnRow(t *testing.T) {
	gate := &fakeGate{token: "tok"}
	dir := directory.New(&fakeLister{sets: testSets()}, gate)
	cache := sess.NewCache()
	cache.Put("s1", sess.Result{Correct: 2, Total: 3, ElapsedSeconds: 40})

	s := New(dir, fakeSessionAPI{}, gate, cache)
	s.Update(s.Init()())

	view := s.View(80, 24)
	if !strings.Contains(view, "scored 2/3") {
		t.Errorf("view missing cached score:\n%s", view)
	}
}
