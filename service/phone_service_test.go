package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"go-voice-api/model"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPhoneRepo struct{ mock.Mock }

func (m *mockPhoneRepo) Create(phone *model.PhoneNumber) error {
	args := m.Called(phone)
	return args.Error(0)
}

func (m *mockPhoneRepo) GetByID(id uuid.UUID) (*model.PhoneNumber, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PhoneNumber), args.Error(1)
}

func (m *mockPhoneRepo) GetByIDAndUserID(id uuid.UUID, userID int) (*model.PhoneNumber, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PhoneNumber), args.Error(1)
}

func (m *mockPhoneRepo) GetByUserID(userID int) ([]*model.PhoneNumber, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PhoneNumber), args.Error(1)
}

func (m *mockPhoneRepo) Delete(id uuid.UUID, userID int) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

type mockCacheClient struct{ mock.Mock }

func (m *mockCacheClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *mockCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.Called(ctx, key, value, expiration)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCacheClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.Called(ctx, keys)
	return redis.NewIntResult(1, nil)
}

func cacheMiss() *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}

// TestPhoneService_OwnershipScoping walks the cross-tenant scenario: owner A
// creates a number, user B asks for it by ID and gets not found, a
// service-key caller asks for the same ID and gets the row.
func TestPhoneService_OwnershipScoping(t *testing.T) {
	phoneID := uuid.New()
	owned := &model.PhoneNumber{ID: phoneID, Label: "support line", UserID: 1}

	userB := &model.AuthContext{Mode: model.AuthModeUser, User: &model.User{ID: 2}}
	apiKey := &model.AuthContext{Mode: model.AuthModeAPIKey}

	t.Run("other user's lookup reports not found", func(t *testing.T) {
		mockRepo := new(mockPhoneRepo)
		phoneService := NewPhoneService(mockRepo, new(mockCacheClient))

		mockRepo.On("GetByIDAndUserID", phoneID, 2).Return(nil, sql.ErrNoRows).Once()

		_, err := phoneService.GetPhoneNumber(userB, phoneID)
		assert.ErrorIs(t, err, ErrPhoneNumberNotFound)
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("service key reads unscoped", func(t *testing.T) {
		mockRepo := new(mockPhoneRepo)
		phoneService := NewPhoneService(mockRepo, new(mockCacheClient))

		mockRepo.On("GetByID", phoneID).Return(owned, nil).Once()

		phone, err := phoneService.GetPhoneNumber(apiKey, phoneID)
		require.NoError(t, err)
		assert.Equal(t, 1, phone.UserID)
		mockRepo.AssertNotCalled(t, "GetByIDAndUserID")
	})

	t.Run("owner reads own row", func(t *testing.T) {
		mockRepo := new(mockPhoneRepo)
		phoneService := NewPhoneService(mockRepo, new(mockCacheClient))

		owner := &model.AuthContext{Mode: model.AuthModeUser, User: &model.User{ID: 1}}
		mockRepo.On("GetByIDAndUserID", phoneID, 1).Return(owned, nil).Once()

		phone, err := phoneService.GetPhoneNumber(owner, phoneID)
		require.NoError(t, err)
		assert.Equal(t, phoneID, phone.ID)
	})
}

func TestPhoneService_ListPhoneNumbers_CacheAside(t *testing.T) {
	t.Run("cache miss falls through and populates", func(t *testing.T) {
		mockRepo := new(mockPhoneRepo)
		mockCache := new(mockCacheClient)
		phoneService := NewPhoneService(mockRepo, mockCache)

		phones := []*model.PhoneNumber{{ID: uuid.New(), Label: "main", UserID: 1}}

		mockCache.On("Get", mock.Anything, "phone_numbers:1").Return(cacheMiss()).Once()
		mockRepo.On("GetByUserID", 1).Return(phones, nil).Once()
		mockCache.On("Set", mock.Anything, "phone_numbers:1", mock.Anything, 10*time.Minute).Once()

		got, err := phoneService.ListPhoneNumbers(1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		mockRepo := new(mockPhoneRepo)
		mockCache := new(mockCacheClient)
		phoneService := NewPhoneService(mockRepo, mockCache)

		phones := []*model.PhoneNumber{{ID: uuid.New(), Label: "main", UserID: 1}}
		data, err := json.Marshal(phones)
		require.NoError(t, err)

		mockCache.On("Get", mock.Anything, "phone_numbers:1").Return(redis.NewStringResult(string(data), nil)).Once()

		got, err := phoneService.ListPhoneNumbers(1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		mockRepo.AssertNotCalled(t, "GetByUserID")
	})
}

func TestPhoneService_CreateInvalidatesCache(t *testing.T) {
	mockRepo := new(mockPhoneRepo)
	mockCache := new(mockCacheClient)
	phoneService := NewPhoneService(mockRepo, mockCache)

	mockRepo.On("Create", mock.MatchedBy(func(p *model.PhoneNumber) bool {
		return p.UserID == 1 && p.Label == "support" && p.ID != uuid.Nil
	})).Return(nil).Once()
	mockCache.On("Del", mock.Anything, []string{"phone_numbers:1"}).Once()

	phone, err := phoneService.CreatePhoneNumber(1, model.CreatePhoneNumberRequest{
		Label:    "support",
		Number:   "+15551234567",
		Provider: "twilio",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, phone.UserID)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestPhoneService_Delete(t *testing.T) {
	phoneID := uuid.New()

	t.Run("success invalidates cache", func(t *testing.T) {
		mockRepo := new(mockPhoneRepo)
		mockCache := new(mockCacheClient)
		phoneService := NewPhoneService(mockRepo, mockCache)

		mockRepo.On("Delete", phoneID, 1).Return(nil).Once()
		mockCache.On("Del", mock.Anything, []string{"phone_numbers:1"}).Once()

		assert.NoError(t, phoneService.DeletePhoneNumber(1, phoneID))
		mockCache.AssertExpectations(t)
	})

	t.Run("missing or unowned row", func(t *testing.T) {
		mockRepo := new(mockPhoneRepo)
		mockCache := new(mockCacheClient)
		phoneService := NewPhoneService(mockRepo, mockCache)

		mockRepo.On("Delete", phoneID, 2).Return(sql.ErrNoRows).Once()

		err := phoneService.DeletePhoneNumber(2, phoneID)
		assert.ErrorIs(t, err, ErrPhoneNumberNotFound)
		mockCache.AssertNotCalled(t, "Del")
	})
}
