package repository

import (
	"database/sql"
	"go-voice-api/logger"
	"go-voice-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IPhoneRepository defines the contract for phone number persistence.
// GetByID is deliberately unscoped: it serves trusted backend callers that
// may read any tenant's rows. GetByIDAndUserID is the owner-scoped variant.
type IPhoneRepository interface {
	Create(phone *model.PhoneNumber) error
	GetByID(id uuid.UUID) (*model.PhoneNumber, error)
	GetByIDAndUserID(id uuid.UUID, userID int) (*model.PhoneNumber, error)
	GetByUserID(userID int) ([]*model.PhoneNumber, error)
	Delete(id uuid.UUID, userID int) error
}

// PhoneRepository implements IPhoneRepository.
type PhoneRepository struct {
	DB *sql.DB
}

func NewPhoneRepository(db *sql.DB) *PhoneRepository {
	return &PhoneRepository{DB: db}
}

func (r *PhoneRepository) Create(phone *model.PhoneNumber) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":  phone.UserID,
		"label":    phone.Label,
		"provider": phone.Provider,
	})
	log.Info("Executing query to create a new phone number")

	query := `INSERT INTO phone_numbers (id, label, number, provider, user_id) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	err := r.DB.QueryRow(query, phone.ID, phone.Label, phone.Number, phone.Provider, phone.UserID).Scan(&phone.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create phone number query")
		return err
	}
	return nil
}

func (r *PhoneRepository) GetByID(id uuid.UUID) (*model.PhoneNumber, error) {
	phone := &model.PhoneNumber{}
	query := `SELECT id, label, number, provider, user_id, created_at FROM phone_numbers WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&phone.ID, &phone.Label, &phone.Number, &phone.Provider, &phone.UserID, &phone.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get phone number by ID query")
		}
		return nil, err
	}
	return phone, nil
}

func (r *PhoneRepository) GetByIDAndUserID(id uuid.UUID, userID int) (*model.PhoneNumber, error) {
	phone := &model.PhoneNumber{}
	query := `SELECT id, label, number, provider, user_id, created_at FROM phone_numbers WHERE id = $1 AND user_id = $2`
	err := r.DB.QueryRow(query, id, userID).Scan(&phone.ID, &phone.Label, &phone.Number, &phone.Provider, &phone.UserID, &phone.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get phone number by ID and user query")
		}
		return nil, err
	}
	return phone, nil
}

func (r *PhoneRepository) GetByUserID(userID int) ([]*model.PhoneNumber, error) {
	log := logger.Log.WithField("user_id", userID)

	query := `SELECT id, label, number, provider, user_id, created_at FROM phone_numbers WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for phone numbers by user ID")
		return nil, err
	}
	defer rows.Close()

	var phones []*model.PhoneNumber
	for rows.Next() {
		var p model.PhoneNumber
		if err := rows.Scan(&p.ID, &p.Label, &p.Number, &p.Provider, &p.UserID, &p.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan phone number row")
			return nil, err
		}
		phones = append(phones, &p)
	}
	return phones, rows.Err()
}

// Delete removes a phone number only if it belongs to the given user.
// A row owned by someone else is indistinguishable from a missing one.
func (r *PhoneRepository) Delete(id uuid.UUID, userID int) error {
	query := `DELETE FROM phone_numbers WHERE id = $1 AND user_id = $2`
	result, err := r.DB.Exec(query, id, userID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete phone number query")
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
