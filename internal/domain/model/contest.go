package model

type Contest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Problems    []Problem `json:"problems"`
}
