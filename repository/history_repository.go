package repository

import (
	"database/sql"
	"go-voice-api/logger"
	"go-voice-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IHistoryRepository defines the contract for call history persistence.
type IHistoryRepository interface {
	Create(history *model.History) error
	GetByAgentID(userID int, agentID uuid.UUID) ([]*model.History, error)
}

// HistoryRepository implements IHistoryRepository.
type HistoryRepository struct {
	DB *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

func (r *HistoryRepository) Create(history *model.History) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":  history.UserID,
		"agent_id": history.AgentID,
		"duration": history.Duration,
	})
	log.Info("Executing query to create a new history record")

	query := `INSERT INTO history (user_id, agent_id, started_at, duration, summary, conversation) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.DB.QueryRow(query, history.UserID, history.AgentID, history.StartedAt, history.Duration, history.Summary, history.Conversation).Scan(&history.ID, &history.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create history query")
		return err
	}
	return nil
}

// GetByAgentID lists one agent's call records for its owner, newest first.
func (r *HistoryRepository) GetByAgentID(userID int, agentID uuid.UUID) ([]*model.History, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":  userID,
		"agent_id": agentID,
	})

	query := `SELECT id, user_id, agent_id, started_at, duration, summary, conversation, created_at FROM history WHERE user_id = $1 AND agent_id = $2 ORDER BY started_at DESC`
	rows, err := r.DB.Query(query, userID, agentID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for history by agent ID")
		return nil, err
	}
	defer rows.Close()

	var records []*model.History
	for rows.Next() {
		var h model.History
		if err := rows.Scan(&h.ID, &h.UserID, &h.AgentID, &h.StartedAt, &h.Duration, &h.Summary, &h.Conversation, &h.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan history row")
			return nil, err
		}
		records = append(records, &h)
	}
	return records, rows.Err()
}
