package service

import (
	"database/sql"
	"errors"
	"go-voice-api/model"
	"go-voice-api/repository"

	"github.com/google/uuid"
)

// ErrAgentNotFound is returned when a history record references an agent
// that does not exist (or, for user sessions, one the caller cannot see).
var ErrAgentNotFound = errors.New("agent not found")

// IHistoryService records and lists agent call history. Creation is
// dual-mode: the voice backend writes records under the service key and the
// owning user is derived from the agent, while a user session writes records
// under its own identity.
type IHistoryService interface {
	CreateHistory(authCtx *model.AuthContext, req model.CreateHistoryRequest) (*model.History, error)
	ListHistory(userID int, agentID uuid.UUID) ([]*model.History, error)
}

type HistoryService struct {
	repo      repository.IHistoryRepository
	agentRepo repository.IAgentRepository
}

func NewHistoryService(repo repository.IHistoryRepository, agentRepo repository.IAgentRepository) *HistoryService {
	return &HistoryService{repo: repo, agentRepo: agentRepo}
}

// CreateHistory stores a call record. Under the service key the owner is
// whoever owns the agent; a missing agent reports not found before anything
// is written. Under a user session the record is owned by the caller.
func (s *HistoryService) CreateHistory(authCtx *model.AuthContext, req model.CreateHistoryRequest) (*model.History, error) {
	var userID int

	switch authCtx.Mode {
	case model.AuthModeAPIKey:
		agent, err := s.agentRepo.GetByID(req.AgentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrAgentNotFound
			}
			return nil, err
		}
		userID = agent.UserID
	case model.AuthModeUser:
		userID = authCtx.User.ID
	default:
		return nil, ErrInvalidCredentials
	}

	history := &model.History{
		UserID:       userID,
		AgentID:      req.AgentID,
		StartedAt:    req.StartedAt,
		Duration:     req.Duration,
		Summary:      req.Summary,
		Conversation: req.Conversation,
	}

	if err := s.repo.Create(history); err != nil {
		return nil, err
	}
	return history, nil
}

// ListHistory returns the caller's own records for one agent, newest first.
func (s *HistoryService) ListHistory(userID int, agentID uuid.UUID) ([]*model.History, error) {
	return s.repo.GetByAgentID(userID, agentID)
}
