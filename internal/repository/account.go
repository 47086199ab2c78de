package repository

import (
	"fmt"
	"time"

	"github.com/rsharma/fintrack/internal/models"
)

// CreatePaymentAccount inserts a payment account
func (r *Repository) CreatePaymentAccount(a *models.PaymentAccount) error {
	query := `
		INSERT INTO payment_accounts (user_id, type, name, details, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	var createdAt time.Time
	err := r.db.QueryRow(query, a.UserID, a.Type, a.Name, a.Details).
		Scan(&a.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("failed to create payment account: %w", err)
	}
	a.CreatedAt = createdAt.Format(time.RFC3339)
	return nil
}

// ListPaymentAccounts returns all payment accounts for a user
func (r *Repository) ListPaymentAccounts(userID int64) ([]models.PaymentAccount, error) {
	query := `
		SELECT id, user_id, type, name, details, created_at
		FROM payment_accounts
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.PaymentAccount
	for rows.Next() {
		var a models.PaymentAccount
		var createdAt time.Time
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Name, &a.Details, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment account: %w", err)
		}
		a.CreatedAt = createdAt.Format(time.RFC3339)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
