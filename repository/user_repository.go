package repository

import (
	"database/sql"
	"errors"
	"go-voice-api/logger"
	"go-voice-api/model"
	"time"

	"github.com/lib/pq"
)

// ErrDuplicateEmail signals a unique-key violation on users.email.
var ErrDuplicateEmail = errors.New("email already registered")

// IUserRepository defines the contract for identity persistence.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByEmail(email string) (*model.User, error)
	UpdateRefreshToken(userID int, token string, expires time.Time) error
	RotateRefreshToken(userID int, oldToken, newToken string, expires time.Time) (bool, error)
}

// UserRepository implements IUserRepository.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) CreateUser(user *model.User) error {
	query := `INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.DB.QueryRow(query, user.Name, user.Email, user.Password).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateEmail
		}
		logger.Log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, name, email, password, refresh_token, refresh_token_expires, created_at FROM users WHERE email = $1`
	err := r.DB.QueryRow(query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.RefreshToken, &user.RefreshTokenExpires, &user.CreatedAt,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get user by email query")
		}
		return nil, err // Return sql.ErrNoRows if not found
	}
	return user, nil
}

// UpdateRefreshToken stores a new refresh token on the user row regardless of
// what was there before. Used at signup and signin, where rotation is
// unconditional.
func (r *UserRepository) UpdateRefreshToken(userID int, token string, expires time.Time) error {
	log := logger.Log.WithField("user_id", userID)

	query := `UPDATE users SET refresh_token = $1, refresh_token_expires = $2 WHERE id = $3`
	result, err := r.DB.Exec(query, token, expires, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update refresh token query")
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

// RotateRefreshToken swaps the stored refresh token from oldToken to newToken
// in a single compare-and-set statement. It returns false when the stored
// value no longer equals oldToken, which is how a concurrent rotation that
// already won is detected: the loser must not overwrite the winner's token.
func (r *UserRepository) RotateRefreshToken(userID int, oldToken, newToken string, expires time.Time) (bool, error) {
	log := logger.Log.WithField("user_id", userID)

	query := `UPDATE users SET refresh_token = $1, refresh_token_expires = $2 WHERE id = $3 AND refresh_token = $4`
	result, err := r.DB.Exec(query, newToken, expires, userID, oldToken)
	if err != nil {
		log.WithError(err).Error("Failed to execute rotate refresh token query")
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}
