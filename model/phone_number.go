package model

import (
	"time"

	"github.com/google/uuid"
)

type PhoneNumber struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Number    string    `json:"number"`
	Provider  string    `json:"provider"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
