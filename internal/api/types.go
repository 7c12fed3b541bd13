package api

import "time"

// Visibility values for a question set.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// QuestionSet is a named collection of questions with an owner and a
// visibility flag.
type QuestionSet struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Owner      string    `json:"owner"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnswerOption is one selectable answer for a question. The server never
// includes a correctness flag here; scoring happens server-side on submit.
type AnswerOption struct {
	ID   string `json:"id"`
	Text string `json:"answer_text"`
}

// Question is a single question of a set with its ordered answer options.
type Question struct {
	ID      string         `json:"id"`
	Text    string         `json:"question_text"`
	Answers []AnswerOption `json:"answers"`
}

// questionDetails is the payload of GET /api/question-details/{id}.
type questionDetails struct {
	Questions []Question `json:"questions"`
}

// ToggleResult is the payload of PUT /api/question-sets/{id}/toggle-status.
type ToggleResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SubmittedAnswer pairs a question with the chosen answer option.
type SubmittedAnswer struct {
	QuestionID string `json:"question_id"`
	AnswerID   string `json:"answer_id"`
}

// Submission is the request body of POST /api/submit-test/{id}.
// Answers must hold exactly one entry per question of the set.
type Submission struct {
	Answers   []SubmittedAnswer `json:"answers"`
	TimeSpent int               `json:"time_spent"`
}

// SubmitResult is the server's scoring response for a submission.
type SubmitResult struct {
	Success        bool `json:"success"`
	Score          int  `json:"score"`
	TotalQuestions int  `json:"total_questions"`
}

// AnswerRecord is the per-question detail of a completed attempt.
type AnswerRecord struct {
	QuestionID    string         `json:"question_id"`
	QuestionText  string         `json:"question_text"`
	IsCorrect     bool           `json:"is_correct"`
	CorrectAnswer string         `json:"correct_answer"`
	Answers       []AnswerOption `json:"answers"`
}

// HistoryRecord is a server-persisted summary of one completed attempt.
// Read-only on the client.
type HistoryRecord struct {
	TestID         string         `json:"test_id"`
	SetName        string         `json:"set_name"`
	CompletedAt    time.Time      `json:"completed_at"`
	SumCorrect     int            `json:"sum_correct"`
	TotalQuestions int            `json:"total_questions"`
	TimeSpent      int            `json:"time_spent"`
	Answers        []AnswerRecord `json:"answers"`
}

// testHistory is the payload of GET /api/test-history.
type testHistory struct {
	History []HistoryRecord `json:"history"`
}
