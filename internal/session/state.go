package session

import "fmt"

// State is the phase of one test-taking session. A session is scoped to a
// single set selection; choosing a different set resets to Idle.
type State int

const (
	// StateIdle means no load is active: either no set was ever selected,
	// or a load failed and the caller may Select the same set again to
	// retry. The controller does not distinguish the two; a caller that
	// needs to show the failure remembers it itself.
	StateIdle State = iota

	// StateLoading means a question fetch for the selected set is in flight.
	StateLoading

	// StateReady means questions are shown, the timer ticks, and answers
	// are being captured.
	StateReady

	// StateSubmitting means the captured answers are in flight for scoring.
	StateSubmitting

	// StateScored means a result exists for the selected set.
	StateScored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateScored:
		return "scored"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result is the outcome of one scored session. Immutable once produced.
type Result struct {
	Correct        int
	Total          int
	ElapsedSeconds int
}

// FormatElapsed renders a second count as minutes:seconds with the seconds
// zero-padded to two digits (65 → "1:05").
func FormatElapsed(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
