package model

import "time"

// User is an identity row. Email is the unique natural key and is what goes
// into token subjects; the numeric ID is never embedded in a token.
//
// RefreshToken mirrors the single currently valid refresh token for the user.
// Rotation overwrites it, so at most one value is accepted at any time.
type User struct {
	ID                  int        `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Password            string     `json:"-"`
	RefreshToken        *string    `json:"-"`
	RefreshTokenExpires *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
}
