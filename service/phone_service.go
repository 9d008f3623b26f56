package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"go-voice-api/model"
	"go-voice-api/repository"
	"time"

	"github.com/google/uuid"
)

// ErrPhoneNumberNotFound covers both a genuinely missing row and a row owned
// by someone else; the two are indistinguishable so existence is not leaked.
var ErrPhoneNumberNotFound = errors.New("phone number not found")

// IPhoneService defines the phone number contract consumed by handlers.
type IPhoneService interface {
	CreatePhoneNumber(userID int, req model.CreatePhoneNumberRequest) (*model.PhoneNumber, error)
	ListPhoneNumbers(userID int) ([]*model.PhoneNumber, error)
	GetPhoneNumber(authCtx *model.AuthContext, id uuid.UUID) (*model.PhoneNumber, error)
	DeletePhoneNumber(userID int, id uuid.UUID) error
}

// PhoneService handles phone number business logic with a cache-aside
// strategy on the per-user listing.
type PhoneService struct {
	repo  repository.IPhoneRepository
	cache ICacheClient
}

func NewPhoneService(repo repository.IPhoneRepository, cache ICacheClient) *PhoneService {
	return &PhoneService{repo: repo, cache: cache}
}

func listCacheKey(userID int) string {
	return fmt.Sprintf("phone_numbers:%d", userID)
}

// CreatePhoneNumber registers a number for the given owner and invalidates
// the owner's cached listing.
func (s *PhoneService) CreatePhoneNumber(userID int, req model.CreatePhoneNumberRequest) (*model.PhoneNumber, error) {
	phone := &model.PhoneNumber{
		ID:       uuid.New(),
		Label:    req.Label,
		Number:   req.Number,
		Provider: req.Provider,
		UserID:   userID,
	}

	if err := s.repo.Create(phone); err != nil {
		return nil, err
	}

	s.cache.Del(context.Background(), listCacheKey(userID))

	return phone, nil
}

// ListPhoneNumbers returns the caller's own numbers, serving from cache when
// possible.
func (s *PhoneService) ListPhoneNumbers(userID int) ([]*model.PhoneNumber, error) {
	ctx := context.Background()
	cacheKey := listCacheKey(userID)

	cached, err := s.cache.Get(ctx, cacheKey).Result()
	if err == nil {
		var phones []*model.PhoneNumber
		if err := json.Unmarshal([]byte(cached), &phones); err == nil {
			return phones, nil
		}
	}

	phones, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(phones); err == nil {
		s.cache.Set(ctx, cacheKey, data, 10*time.Minute)
	}

	return phones, nil
}

// GetPhoneNumber fetches a number by ID with the scoping the authorization
// mode demands: a service key reads by ID alone, a user session additionally
// requires ownership. Both misses report not found.
func (s *PhoneService) GetPhoneNumber(authCtx *model.AuthContext, id uuid.UUID) (*model.PhoneNumber, error) {
	var (
		phone *model.PhoneNumber
		err   error
	)

	switch authCtx.Mode {
	case model.AuthModeAPIKey:
		phone, err = s.repo.GetByID(id)
	case model.AuthModeUser:
		phone, err = s.repo.GetByIDAndUserID(id, authCtx.User.ID)
	default:
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPhoneNumberNotFound
		}
		return nil, err
	}
	return phone, nil
}

// DeletePhoneNumber removes one of the caller's own numbers and invalidates
// the cached listing.
func (s *PhoneService) DeletePhoneNumber(userID int, id uuid.UUID) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPhoneNumberNotFound
		}
		return err
	}

	s.cache.Del(context.Background(), listCacheKey(userID))
	return nil
}
