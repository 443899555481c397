package model

// LeaderboardEntry is derived from the submission history on every request;
// it is never persisted.
type LeaderboardEntry struct {
	Username       string `json:"username"`
	TotalScore     int    `json:"total_score"`
	SolvedProblems int    `json:"solved_problems"`
}
