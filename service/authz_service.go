package service

import (
	"crypto/subtle"
	"go-voice-api/config"
	"go-voice-api/model"
)

// ISessionAuthenticator is the slice of AuthService the resolver needs.
type ISessionAuthenticator interface {
	CurrentIdentity(accessToken string) (*model.User, error)
}

// IAuthzService defines the credential resolution contract consumed by the
// auth middleware.
type IAuthzService interface {
	Resolve(bearer string) (*model.AuthContext, error)
}

// AuthzService classifies a presented bearer credential as either the static
// service API key or a user access token and produces the AuthContext that
// resource handlers use for ownership scoping. It holds no per-request state
// and performs no caching, so concurrent use needs no coordination.
type AuthzService struct {
	sessions   ISessionAuthenticator
	serviceKey string
}

func NewAuthzService(sessions ISessionAuthenticator, cfg config.AuthConfig) *AuthzService {
	return &AuthzService{
		sessions:   sessions,
		serviceKey: cfg.ServiceAPIKey,
	}
}

// Resolve validates the bearer value, first match wins:
// the configured service key grants api_key mode, otherwise the value must
// be a valid access token and grants user mode. Anything else fails with
// ErrInvalidCredentials.
func (s *AuthzService) Resolve(bearer string) (*model.AuthContext, error) {
	if bearer == "" {
		return nil, ErrInvalidCredentials
	}

	// Constant-time compare so the static key is not guessable through
	// response timing.
	if s.serviceKey != "" && subtle.ConstantTimeCompare([]byte(bearer), []byte(s.serviceKey)) == 1 {
		return &model.AuthContext{Mode: model.AuthModeAPIKey}, nil
	}

	user, err := s.sessions.CurrentIdentity(bearer)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return &model.AuthContext{Mode: model.AuthModeUser, User: user}, nil
}
