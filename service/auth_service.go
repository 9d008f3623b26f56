package service

import (
	"database/sql"
	"errors"
	"go-voice-api/config"
	"go-voice-api/logger"
	"go-voice-api/model"
	"go-voice-api/repository"
	"time"
)

var (
	// ErrEmailTaken signals a signup with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers every authentication failure: unknown
	// email, wrong password, bad or expired token, superseded refresh token.
	// The cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IAuthService defines the session lifecycle contract consumed by handlers.
type IAuthService interface {
	Signup(name, email, password string) (*model.TokenPair, error)
	Signin(email, password string) (*model.TokenPair, error)
	Refresh(refreshToken string) (*model.TokenPair, error)
	CurrentIdentity(accessToken string) (*model.User, error)
}

// AuthService owns the credential and session lifecycle: signup, signin,
// refresh rotation and access-token identity resolution.
type AuthService struct {
	userRepo   repository.IUserRepository
	tokens     *TokenService
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(userRepo repository.IUserRepository, tokens *TokenService, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

func (s *AuthService) issuePair(email string) (*model.TokenPair, time.Time, error) {
	accessToken, err := s.tokens.Issue(email, model.TokenKindAccess, s.accessTTL)
	if err != nil {
		return nil, time.Time{}, err
	}

	refreshToken, err := s.tokens.Issue(email, model.TokenKindRefresh, s.refreshTTL)
	if err != nil {
		return nil, time.Time{}, err
	}

	pair := &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}
	return pair, time.Now().Add(s.refreshTTL), nil
}

// Signup registers a new identity and opens its first session.
func (s *AuthService) Signup(name, email, password string) (*model.TokenPair, error) {
	log := logger.Log.WithField("email", email)

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hashed,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	pair, refreshExpires, err := s.issuePair(user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRefreshToken(user.ID, pair.RefreshToken, refreshExpires); err != nil {
		return nil, err
	}

	log.WithField("user_id", user.ID).Info("User signed up")
	return pair, nil
}

// Signin authenticates by email and password and rotates the session:
// every successful signin stores a fresh refresh token, invalidating any
// previous one. There is a single active session per identity.
func (s *AuthService) Signin(email, password string) (*model.TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	pair, refreshExpires, err := s.issuePair(user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRefreshToken(user.ID, pair.RefreshToken, refreshExpires); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User signed in")
	return pair, nil
}

// Refresh exchanges a refresh token for a new access/refresh pair. The
// presented token must be of kind refresh and must exactly equal the value
// currently stored on the identity; a superseded token is rejected. The swap
// itself is a compare-and-set, so of two concurrent refreshes holding the
// same prior token at most one wins and the loser fails unauthorized.
func (s *AuthService) Refresh(refreshToken string) (*model.TokenPair, error) {
	claims, err := s.tokens.Parse(refreshToken)
	if err != nil {
		logger.Log.WithError(err).Debug("Refresh token rejected at parse")
		return nil, ErrInvalidCredentials
	}
	if claims.Kind != model.TokenKindRefresh {
		logger.Log.WithField("kind", claims.Kind).Debug("Wrong token kind presented for refresh")
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByEmail(claims.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		logger.Log.WithField("user_id", user.ID).Warn("Superseded or unknown refresh token presented")
		return nil, ErrInvalidCredentials
	}
	if user.RefreshTokenExpires == nil || time.Now().After(*user.RefreshTokenExpires) {
		return nil, ErrInvalidCredentials
	}

	pair, refreshExpires, err := s.issuePair(user.Email)
	if err != nil {
		return nil, err
	}

	rotated, err := s.userRepo.RotateRefreshToken(user.ID, refreshToken, pair.RefreshToken, refreshExpires)
	if err != nil {
		return nil, err
	}
	if !rotated {
		// A concurrent refresh or signin rotated first.
		logger.Log.WithField("user_id", user.ID).Warn("Lost refresh rotation race")
		return nil, ErrInvalidCredentials
	}

	logger.Log.WithField("user_id", user.ID).Info("Session refreshed")
	return pair, nil
}

// CurrentIdentity resolves an access token to its identity. Refresh tokens
// are not accepted here.
func (s *AuthService) CurrentIdentity(accessToken string) (*model.User, error) {
	claims, err := s.tokens.Parse(accessToken)
	if err != nil {
		logger.Log.WithError(err).Debug("Access token rejected at parse")
		return nil, ErrInvalidCredentials
	}
	if claims.Kind != model.TokenKindAccess {
		logger.Log.WithField("kind", claims.Kind).Debug("Wrong token kind presented for identity")
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByEmail(claims.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}
