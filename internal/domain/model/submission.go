package model

import "time"

type SubmissionStatus string

const (
	StatusPending     SubmissionStatus = "PENDING"
	StatusRunning     SubmissionStatus = "RUNNING"
	StatusAccepted    SubmissionStatus = "ACCEPTED"
	StatusWrongAnswer SubmissionStatus = "WRONG_ANSWER"
)

// Terminal reports whether no further automatic transition happens for s.
func (s SubmissionStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusWrongAnswer
}

const (
	// LanguageJava is the fallback tag when a submission omits its language.
	LanguageJava = "JAVA"
	LanguageCPP  = "CPP"
)

type Submission struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	ProblemID string           `json:"problem_id"`
	Code      string           `json:"code"`
	Language  string           `json:"language"`
	Status    SubmissionStatus `json:"status"`
	Result    string           `json:"result,omitempty"`
	Score     int              `json:"score"`
	// Version guards read-modify-write updates; a save carrying a stale
	// version is rejected instead of silently overwriting.
	Version     int       `json:"-"`
	SubmittedAt time.Time `json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
