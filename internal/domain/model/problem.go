package model

type Problem struct {
	ID             string `json:"id"`
	ContestID      string `json:"-"`
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	Description    string `json:"description"`
	SampleInput    string `json:"sample_input"`
	ExpectedOutput string `json:"expected_output"`
	Points         int    `json:"points"`
}
