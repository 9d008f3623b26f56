package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"go-voice-api/common"
	"go-voice-api/logger"
	"go-voice-api/model"
	"go-voice-api/repository"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AgentHandler works against the repository directly; agents carry no
// business logic beyond ownership scoping.
type AgentHandler struct {
	Repo repository.IAgentRepository
}

func NewAgentHandler(repo repository.IAgentRepository) *AgentHandler {
	return &AgentHandler{Repo: repo}
}

// CreateAgent godoc
// @Summary      Create a realtime voice agent
// @Tags         agents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.CreateAgentRequest true "agent payload"
// @Success      201  {object}  model.Agent
// @Router       /agents [post]
func (h *AgentHandler) CreateAgent(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := userFrom(r)
	if appErr != nil {
		return appErr
	}

	var req model.CreateAgentRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	agent := &model.Agent{
		ID:             uuid.New(),
		Name:           req.Name,
		Model:          req.Model,
		Voice:          req.Voice,
		SystemPrompt:   req.SystemPrompt,
		GreetingPrompt: req.GreetingPrompt,
		UserID:         user.ID,
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"name":    req.Name,
	}).Info("Create agent request received")

	if err := h.Repo.Create(agent); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create agent", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(agent)
	return nil
}

// ListAgents godoc
// @Summary      List own agents
// @Tags         agents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.Agent
// @Router       /agents [get]
func (h *AgentHandler) ListAgents(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := userFrom(r)
	if appErr != nil {
		return appErr
	}

	agents, err := h.Repo.GetByUserID(user.ID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve agents", err)
	}
	if agents == nil {
		agents = []*model.Agent{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(agents)
	return nil
}

// GetAgent godoc
// @Summary      Get an agent by ID
// @Description  Service-key callers read any row by ID; user sessions only their own
// @Tags         agents
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "agent ID"
// @Success      200  {object}  model.Agent
// @Failure      404  {object}  common.AppError
// @Router       /agents/{id} [get]
func (h *AgentHandler) GetAgent(w http.ResponseWriter, r *http.Request) *common.AppError {
	authCtx, ok := authContextFrom(r)
	if !ok {
		return common.NewUnauthorizedError(nil)
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return common.NewInvalidInputError("Invalid agent ID", err)
	}

	var agent *model.Agent
	switch authCtx.Mode {
	case model.AuthModeAPIKey:
		agent, err = h.Repo.GetByID(id)
	case model.AuthModeUser:
		agent, err = h.Repo.GetByIDAndUserID(id, authCtx.User.ID)
	default:
		return common.NewUnauthorizedError(nil)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewNotFoundError("Agent not found")
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve agent", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(agent)
	return nil
}

// DeleteAgent godoc
// @Summary      Delete an own agent
// @Tags         agents
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "agent ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  common.AppError
// @Router       /agents/{id} [delete]
func (h *AgentHandler) DeleteAgent(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := userFrom(r)
	if appErr != nil {
		return appErr
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return common.NewInvalidInputError("Invalid agent ID", err)
	}

	if err := h.Repo.Delete(id, user.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewNotFoundError("Agent not found")
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete agent", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	return nil
}
