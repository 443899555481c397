package model

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	ContestID string    `json:"contest_id"`
	CreatedAt time.Time `json:"created_at"`
}
