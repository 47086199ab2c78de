package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rsharma/fintrack/internal/models"
)

// ErrNotFound is returned when a record does not exist or belongs to another user.
var ErrNotFound = errors.New("record not found")

const dateLayout = "2006-01-02"

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	var createdAt time.Time
	err := r.db.QueryRow(query, user.Name, user.Email, user.PasswordHash).
		Scan(&user.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.CreatedAt = createdAt.Format(time.RFC3339)
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	var createdAt time.Time
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.CreatedAt = createdAt.Format(time.RFC3339)
	return user, nil
}

// FindUserByID retrieves a user by ID
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	var createdAt time.Time
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.CreatedAt = createdAt.Format(time.RFC3339)
	return user, nil
}

// ListUserEmails returns id, name and email for every registered user.
// Used by the reminder scheduler.
func (r *Repository) ListUserEmails() ([]models.User, error) {
	rows, err := r.db.Query(`SELECT id, name, email FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
