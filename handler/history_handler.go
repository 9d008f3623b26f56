package handler

import (
	"encoding/json"
	"errors"
	"go-voice-api/common"
	"go-voice-api/logger"
	"go-voice-api/model"
	"go-voice-api/service"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type HistoryHandler struct {
	service service.IHistoryService
}

func NewHistoryHandler(service service.IHistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// CreateHistory godoc
// @Summary      Record an agent call
// @Description  Service-key callers attribute the record to the agent's owner; user sessions to themselves
// @Tags         history
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.CreateHistoryRequest true "history payload"
// @Success      201  {object}  model.History
// @Failure      404  {object}  common.AppError
// @Router       /history [post]
func (h *HistoryHandler) CreateHistory(w http.ResponseWriter, r *http.Request) *common.AppError {
	authCtx, ok := authContextFrom(r)
	if !ok {
		return common.NewUnauthorizedError(nil)
	}

	var req model.CreateHistoryRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	logger.Log.WithFields(logrus.Fields{
		"agent_id": req.AgentID,
		"mode":     authCtx.Mode,
	}).Info("Create history request received")

	history, err := h.service.CreateHistory(authCtx, req)
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			return common.NewNotFoundError("Agent not found")
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewUnauthorizedError(nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create history record", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(history)
	return nil
}

// ListHistory godoc
// @Summary      List own call history for an agent
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        agent_id path string true "agent ID"
// @Success      200  {array}  model.History
// @Router       /history/{agent_id} [get]
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := userFrom(r)
	if appErr != nil {
		return appErr
	}

	agentID, err := uuid.Parse(r.PathValue("agent_id"))
	if err != nil {
		return common.NewInvalidInputError("Invalid agent ID", err)
	}

	records, err := h.service.ListHistory(user.ID, agentID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve history", err)
	}
	if records == nil {
		records = []*model.History{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(records)
	return nil
}
