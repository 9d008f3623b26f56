package handler

import (
	"context"
	"encoding/json"
	"go-voice-api/model"
	"go-voice-api/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPhoneService struct{ mock.Mock }

func (m *mockPhoneService) CreatePhoneNumber(userID int, req model.CreatePhoneNumberRequest) (*model.PhoneNumber, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PhoneNumber), args.Error(1)
}

func (m *mockPhoneService) ListPhoneNumbers(userID int) ([]*model.PhoneNumber, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PhoneNumber), args.Error(1)
}

func (m *mockPhoneService) GetPhoneNumber(authCtx *model.AuthContext, id uuid.UUID) (*model.PhoneNumber, error) {
	args := m.Called(authCtx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PhoneNumber), args.Error(1)
}

func (m *mockPhoneService) DeletePhoneNumber(userID int, id uuid.UUID) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

func requestWithAuth(method, target, body string, authCtx *model.AuthContext) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(context.WithValue(req.Context(), AuthContextKey, authCtx))
}

func TestPhoneHandler_GetPhoneNumber(t *testing.T) {
	phoneID := uuid.New()
	owned := &model.PhoneNumber{ID: phoneID, Label: "support", UserID: 1}

	t.Run("other user's lookup is 404", func(t *testing.T) {
		mockSvc := new(mockPhoneService)
		h := NewPhoneHandler(mockSvc)

		userB := &model.AuthContext{Mode: model.AuthModeUser, User: &model.User{ID: 2}}
		mockSvc.On("GetPhoneNumber", userB, phoneID).Return(nil, service.ErrPhoneNumberNotFound).Once()

		req := requestWithAuth("GET", "/phone_numbers/"+phoneID.String(), "", userB)
		req.SetPathValue("id", phoneID.String())
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.GetPhoneNumber).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("service key reads any row", func(t *testing.T) {
		mockSvc := new(mockPhoneService)
		h := NewPhoneHandler(mockSvc)

		apiKey := &model.AuthContext{Mode: model.AuthModeAPIKey}
		mockSvc.On("GetPhoneNumber", apiKey, phoneID).Return(owned, nil).Once()

		req := requestWithAuth("GET", "/phone_numbers/"+phoneID.String(), "", apiKey)
		req.SetPathValue("id", phoneID.String())
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.GetPhoneNumber).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var phone model.PhoneNumber
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &phone))
		assert.Equal(t, phoneID, phone.ID)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		mockSvc := new(mockPhoneService)
		h := NewPhoneHandler(mockSvc)

		userA := &model.AuthContext{Mode: model.AuthModeUser, User: &model.User{ID: 1}}
		req := requestWithAuth("GET", "/phone_numbers/not-a-uuid", "", userA)
		req.SetPathValue("id", "not-a-uuid")
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.GetPhoneNumber).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockSvc.AssertNotCalled(t, "GetPhoneNumber")
	})
}

func TestPhoneHandler_CreatePhoneNumber(t *testing.T) {
	t.Run("user creates own number", func(t *testing.T) {
		mockSvc := new(mockPhoneService)
		h := NewPhoneHandler(mockSvc)

		userA := &model.AuthContext{Mode: model.AuthModeUser, User: &model.User{ID: 1}}
		created := &model.PhoneNumber{ID: uuid.New(), Label: "support", Number: "+15551234567", Provider: "twilio", UserID: 1}
		mockSvc.On("CreatePhoneNumber", 1, mock.Anything).Return(created, nil).Once()

		body := `{"label":"support","number":"+15551234567","provider":"twilio"}`
		req := requestWithAuth("POST", "/phone_numbers", body, userA)
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.CreatePhoneNumber).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("api key cannot create", func(t *testing.T) {
		mockSvc := new(mockPhoneService)
		h := NewPhoneHandler(mockSvc)

		apiKey := &model.AuthContext{Mode: model.AuthModeAPIKey}
		body := `{"label":"support","number":"+15551234567","provider":"twilio"}`
		req := requestWithAuth("POST", "/phone_numbers", body, apiKey)
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.CreatePhoneNumber).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockSvc.AssertNotCalled(t, "CreatePhoneNumber")
	})
}

func TestPhoneHandler_ListPhoneNumbers_EmptyIsArray(t *testing.T) {
	mockSvc := new(mockPhoneService)
	h := NewPhoneHandler(mockSvc)

	userA := &model.AuthContext{Mode: model.AuthModeUser, User: &model.User{ID: 1}}
	mockSvc.On("ListPhoneNumbers", 1).Return(nil, nil).Once()

	req := requestWithAuth("GET", "/phone_numbers", "", userA)
	rr := httptest.NewRecorder()

	ErrorHandlingMiddleware(h.ListPhoneNumbers).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
