package model

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a realtime voice agent owned by a user.
type Agent struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Model          string    `json:"model"`
	Voice          string    `json:"voice"`
	SystemPrompt   *string   `json:"system_prompt,omitempty"`
	GreetingPrompt *string   `json:"greeting_prompt,omitempty"`
	UserID         int       `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}
