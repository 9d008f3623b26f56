package model

// AuthMode is a closed enumeration of the ways a request can be authorized.
// Call sites branch with an exhaustive switch so a new mode is a
// compile-time-visible change, not a silently unhandled case.
type AuthMode string

const (
	// AuthModeAPIKey is a trusted backend caller holding the static service
	// key. It is not tied to any user and may read any tenant's resources.
	AuthModeAPIKey AuthMode = "api_key"
	// AuthModeUser is an ordinary session authenticated by an access token.
	AuthModeUser AuthMode = "user"
)

// AuthContext is the resolved authorization for a single request. User is
// set if and only if Mode is AuthModeUser. It is never persisted.
type AuthContext struct {
	Mode AuthMode
	User *User
}
