package model

import "github.com/golang-jwt/jwt/v5"

// Token kinds. A token minted for one purpose is never accepted for the
// other: refresh tokens cannot authenticate requests and access tokens
// cannot mint new pairs.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

type AppClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}
