package repository

import (
	"database/sql"
	"go-voice-api/logger"
	"go-voice-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IAgentRepository defines the contract for agent persistence.
type IAgentRepository interface {
	Create(agent *model.Agent) error
	GetByID(id uuid.UUID) (*model.Agent, error)
	GetByIDAndUserID(id uuid.UUID, userID int) (*model.Agent, error)
	GetByUserID(userID int) ([]*model.Agent, error)
	Delete(id uuid.UUID, userID int) error
}

// AgentRepository implements IAgentRepository.
type AgentRepository struct {
	DB *sql.DB
}

func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{DB: db}
}

func (r *AgentRepository) Create(agent *model.Agent) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": agent.UserID,
		"name":    agent.Name,
		"model":   agent.Model,
	})
	log.Info("Executing query to create a new agent")

	query := `INSERT INTO agents (id, name, model, voice, system_prompt, greeting_prompt, user_id) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`
	err := r.DB.QueryRow(query, agent.ID, agent.Name, agent.Model, agent.Voice, agent.SystemPrompt, agent.GreetingPrompt, agent.UserID).Scan(&agent.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create agent query")
		return err
	}
	return nil
}

func (r *AgentRepository) GetByID(id uuid.UUID) (*model.Agent, error) {
	agent := &model.Agent{}
	query := `SELECT id, name, model, voice, system_prompt, greeting_prompt, user_id, created_at FROM agents WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&agent.ID, &agent.Name, &agent.Model, &agent.Voice, &agent.SystemPrompt, &agent.GreetingPrompt, &agent.UserID, &agent.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get agent by ID query")
		}
		return nil, err
	}
	return agent, nil
}

func (r *AgentRepository) GetByIDAndUserID(id uuid.UUID, userID int) (*model.Agent, error) {
	agent := &model.Agent{}
	query := `SELECT id, name, model, voice, system_prompt, greeting_prompt, user_id, created_at FROM agents WHERE id = $1 AND user_id = $2`
	err := r.DB.QueryRow(query, id, userID).Scan(&agent.ID, &agent.Name, &agent.Model, &agent.Voice, &agent.SystemPrompt, &agent.GreetingPrompt, &agent.UserID, &agent.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get agent by ID and user query")
		}
		return nil, err
	}
	return agent, nil
}

func (r *AgentRepository) GetByUserID(userID int) ([]*model.Agent, error) {
	log := logger.Log.WithField("user_id", userID)

	query := `SELECT id, name, model, voice, system_prompt, greeting_prompt, user_id, created_at FROM agents WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for agents by user ID")
		return nil, err
	}
	defer rows.Close()

	var agents []*model.Agent
	for rows.Next() {
		var a model.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Model, &a.Voice, &a.SystemPrompt, &a.GreetingPrompt, &a.UserID, &a.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan agent row")
			return nil, err
		}
		agents = append(agents, &a)
	}
	return agents, rows.Err()
}

func (r *AgentRepository) Delete(id uuid.UUID, userID int) error {
	query := `DELETE FROM agents WHERE id = $1 AND user_id = $2`
	result, err := r.DB.Exec(query, id, userID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete agent query")
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
