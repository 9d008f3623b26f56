package model

import (
	"time"

	"github.com/google/uuid"
)

// History is one recorded call handled by an agent. Rows are written either
// by the owning user or by the voice backend under the service key, in which
// case ownership is derived from the agent.
type History struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	AgentID      uuid.UUID `json:"agent_id"`
	StartedAt    time.Time `json:"started_at"`
	Duration     int       `json:"duration"`
	Summary      *string   `json:"summary,omitempty"`
	Conversation *string   `json:"conversation,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
