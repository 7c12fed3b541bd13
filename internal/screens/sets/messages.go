package sets

import "github.com/minhvu/quizdeck/internal/api"

// setsLoadedMsg is sent when the directory refresh finishes.
type setsLoadedMsg struct {
	Sets []api.QuestionSet
	Err  error
}

// toggledMsg is sent when a visibility toggle finishes.
type toggledMsg struct {
	Err error
}
