package entity

import "time"

// Conversation carries the previous turn so follow-up questions can be
// answered with the last assistant response in the prompt.
type Conversation struct {
	Id           string    `json:"id"`
	LastQuestion string    `json:"last_question"`
	LastAnswer   string    `json:"last_answer"`
	UpdatedAt    time.Time `json:"updated_at"`
}
