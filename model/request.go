// file: model/request.go

package model

import (
	"time"

	"github.com/google/uuid"
)

// SignupRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SigninRequest defines the payload for user authentication.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest carries the refresh token presented to mint a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CreatePhoneNumberRequest defines the payload for registering a phone number.
type CreatePhoneNumberRequest struct {
	Label    string `json:"label" validate:"required,min=1,max=100"`
	Number   string `json:"number" validate:"required,e164"`
	Provider string `json:"provider" validate:"required,min=1,max=50"`
}

// CreateHistoryRequest defines the payload for recording an agent call.
type CreateHistoryRequest struct {
	AgentID      uuid.UUID `json:"agent_id" validate:"required"`
	StartedAt    time.Time `json:"started_at" validate:"required"`
	Duration     int       `json:"duration" validate:"required,gte=0"`
	Summary      *string   `json:"summary"`
	Conversation *string   `json:"conversation"`
}

// CreateAgentRequest defines the payload for creating a realtime voice agent.
type CreateAgentRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=100"`
	Model          string  `json:"model" validate:"required"`
	Voice          string  `json:"voice" validate:"required"`
	SystemPrompt   *string `json:"system_prompt"`
	GreetingPrompt *string `json:"greeting_prompt"`
}
