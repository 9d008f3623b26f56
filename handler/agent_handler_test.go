package handler

import (
	"database/sql"
	"encoding/json"
	"go-voice-api/model"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAgentRepo struct{ mock.Mock }

func (m *mockAgentRepo) Create(agent *model.Agent) error {
	args := m.Called(agent)
	return args.Error(0)
}

func (m *mockAgentRepo) GetByID(id uuid.UUID) (*model.Agent, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Agent), args.Error(1)
}

func (m *mockAgentRepo) GetByIDAndUserID(id uuid.UUID, userID int) (*model.Agent, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Agent), args.Error(1)
}

func (m *mockAgentRepo) GetByUserID(userID int) ([]*model.Agent, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Agent), args.Error(1)
}

func (m *mockAgentRepo) Delete(id uuid.UUID, userID int) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

// TestAgentHandler_GetAgent_OwnershipScoping mirrors the cross-tenant phone
// number scenario for agents: an agent owned by user 1 is invisible to user 2
// but readable by a service-key caller.
func TestAgentHandler_GetAgent_OwnershipScoping(t *testing.T) {
	agentID := uuid.New()
	owned := &model.Agent{ID: agentID, Name: "receptionist", Model: "gpt-4o-realtime", Voice: "alloy", UserID: 1}

	t.Run("other user's lookup is 404", func(t *testing.T) {
		mockRepo := new(mockAgentRepo)
		h := NewAgentHandler(mockRepo)

		userB := &model.AuthContext{Mode: model.AuthModeUser, User: &model.User{ID: 2}}
		mockRepo.On("GetByIDAndUserID", agentID, 2).Return(nil, sql.ErrNoRows).Once()

		req := requestWithAuth("GET", "/agents/"+agentID.String(), "", userB)
		req.SetPathValue("id", agentID.String())
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.GetAgent).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("owner reads own agent", func(t *testing.T) {
		mockRepo := new(mockAgentRepo)
		h := NewAgentHandler(mockRepo)

		userA := &model.AuthContext{Mode: model.AuthModeUser, User: &model.User{ID: 1}}
		mockRepo.On("GetByIDAndUserID", agentID, 1).Return(owned, nil).Once()

		req := requestWithAuth("GET", "/agents/"+agentID.String(), "", userA)
		req.SetPathValue("id", agentID.String())
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.GetAgent).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("service key reads any agent", func(t *testing.T) {
		mockRepo := new(mockAgentRepo)
		h := NewAgentHandler(mockRepo)

		apiKey := &model.AuthContext{Mode: model.AuthModeAPIKey}
		mockRepo.On("GetByID", agentID).Return(owned, nil).Once()

		req := requestWithAuth("GET", "/agents/"+agentID.String(), "", apiKey)
		req.SetPathValue("id", agentID.String())
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.GetAgent).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var agent model.Agent
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &agent))
		assert.Equal(t, 1, agent.UserID)
		mockRepo.AssertNotCalled(t, "GetByIDAndUserID")
	})
}

func TestAgentHandler_CreateAgent(t *testing.T) {
	t.Run("user creates own agent", func(t *testing.T) {
		mockRepo := new(mockAgentRepo)
		h := NewAgentHandler(mockRepo)

		userA := &model.AuthContext{Mode: model.AuthModeUser, User: &model.User{ID: 1}}
		mockRepo.On("Create", mock.MatchedBy(func(a *model.Agent) bool {
			return a.UserID == 1 && a.Name == "receptionist" && a.ID != uuid.Nil
		})).Return(nil).Once()

		body := `{"name":"receptionist","model":"gpt-4o-realtime","voice":"alloy"}`
		req := requestWithAuth("POST", "/agents", body, userA)
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.CreateAgent).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("api key cannot create", func(t *testing.T) {
		mockRepo := new(mockAgentRepo)
		h := NewAgentHandler(mockRepo)

		apiKey := &model.AuthContext{Mode: model.AuthModeAPIKey}
		body := `{"name":"receptionist","model":"gpt-4o-realtime","voice":"alloy"}`
		req := requestWithAuth("POST", "/agents", body, apiKey)
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.CreateAgent).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestAgentHandler_DeleteAgent_Unowned(t *testing.T) {
	mockRepo := new(mockAgentRepo)
	h := NewAgentHandler(mockRepo)

	agentID := uuid.New()
	userB := &model.AuthContext{Mode: model.AuthModeUser, User: &model.User{ID: 2}}
	mockRepo.On("Delete", agentID, 2).Return(sql.ErrNoRows).Once()

	req := requestWithAuth("DELETE", "/agents/"+agentID.String(), "", userB)
	req.SetPathValue("id", agentID.String())
	rr := httptest.NewRecorder()

	ErrorHandlingMiddleware(h.DeleteAgent).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
