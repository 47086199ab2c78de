package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// StoreRefreshToken replaces all refresh tokens for a user with a new one.
// Login and refresh both rotate the session this way.
func (r *Repository) StoreRefreshToken(userID int64, tokenHash string, expiresAt time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM refresh_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to remove old refresh tokens: %w", err)
	}
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)`
	if _, err := tx.Exec(query, userID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return tx.Commit()
}

// FindRefreshToken checks that a non-expired token hash exists for the user.
func (r *Repository) FindRefreshToken(userID int64, tokenHash string) error {
	var id int64
	query := `
		SELECT id FROM refresh_tokens
		WHERE user_id = $1 AND token_hash = $2 AND expires_at > CURRENT_TIMESTAMP`
	err := r.db.QueryRow(query, userID, tokenHash).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to find refresh token: %w", err)
	}
	return nil
}
