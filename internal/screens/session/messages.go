package session

import (
	"time"

	"github.com/minhvu/quizdeck/internal/api"
	sess "github.com/minhvu/quizdeck/internal/session"
)

// questionsLoadedMsg is sent when the question fetch for a set finishes.
// The token identifies which load the response belongs to; the controller
// drops it if the user switched sets in the meantime.
type questionsLoadedMsg struct {
	Token     sess.LoadToken
	Questions []api.Question
	Err       error
}

// timerTickMsg is sent every second while the elapsed-time counter runs.
type timerTickMsg time.Time

// submitResultMsg is sent when the scoring request finishes.
type submitResultMsg struct {
	Result *api.SubmitResult
	Err    error
}
