package service

import (
	"errors"
	"fmt"
	"go-voice-api/config"
	"go-voice-api/logger"
	"go-voice-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Parse failure reasons. They are distinguished here for diagnostics only;
// every one of them surfaces as the same unauthorized outcome at the API
// boundary.
var (
	ErrInvalidToken = errors.New("token signature or format is invalid")
	ErrTokenExpired = errors.New("token has expired")
	ErrMissingClaim = errors.New("token is missing a required claim")
)

// TokenService signs and parses the compact session tokens. Tokens are
// self-contained: subject, kind and expiry are all inside the signed claim
// set, so any bit-flip invalidates the token.
type TokenService struct {
	secret []byte
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{secret: []byte(cfg.SecretKey)}
}

// Issue signs a token of the given kind for the subject, valid for ttl.
func (s *TokenService) Issue(subject, kind string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &model.AppClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("subject", subject).Error("Failed to sign token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// Parse verifies the signature and expiry and returns the claim set.
// Only HS256 is accepted; a token signed with any other method fails as
// invalid.
func (s *TokenService) Parse(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Kind == "" {
		return nil, ErrMissingClaim
	}

	return claims, nil
}
