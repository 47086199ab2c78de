package repository

import (
	"fmt"
	"time"

	"github.com/rsharma/fintrack/internal/models"
)

// CreateEMI inserts an EMI record
func (r *Repository) CreateEMI(emi *models.EMI) error {
	query := `
		INSERT INTO emis (user_id, name, amount, start_date, due_day, total_months, payment_account_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	var createdAt, updatedAt time.Time
	err := r.db.QueryRow(query, emi.UserID, emi.Name, emi.Amount, emi.StartDate,
		emi.DueDay, emi.TotalMonths, emi.PaymentAccountID).
		Scan(&emi.ID, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("failed to create emi: %w", err)
	}
	emi.CreatedAt = createdAt.Format(time.RFC3339)
	emi.UpdatedAt = updatedAt.Format(time.RFC3339)
	return nil
}

// ListEMIs returns all EMIs for a user
func (r *Repository) ListEMIs(userID int64) ([]models.EMI, error) {
	query := `
		SELECT id, user_id, name, amount, start_date, due_day, total_months, payment_account_id, created_at, updated_at
		FROM emis
		WHERE user_id = $1
		ORDER BY start_date DESC, id DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list emis: %w", err)
	}
	defer rows.Close()

	var emis []models.EMI
	for rows.Next() {
		var emi models.EMI
		var startDate, createdAt, updatedAt time.Time
		if err := rows.Scan(&emi.ID, &emi.UserID, &emi.Name, &emi.Amount, &startDate,
			&emi.DueDay, &emi.TotalMonths, &emi.PaymentAccountID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan emi: %w", err)
		}
		emi.StartDate = startDate.Format(dateLayout)
		emi.CreatedAt = createdAt.Format(time.RFC3339)
		emi.UpdatedAt = updatedAt.Format(time.RFC3339)
		emis = append(emis, emi)
	}
	return emis, rows.Err()
}

// UpdateEMI updates an EMI owned by the given user
func (r *Repository) UpdateEMI(emi *models.EMI) error {
	query := `
		UPDATE emis
		SET name = $1, amount = $2, start_date = $3, due_day = $4, total_months = $5,
		    payment_account_id = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8`
	res, err := r.db.Exec(query, emi.Name, emi.Amount, emi.StartDate, emi.DueDay,
		emi.TotalMonths, emi.PaymentAccountID, emi.ID, emi.UserID)
	if err != nil {
		return fmt.Errorf("failed to update emi: %w", err)
	}
	return checkAffected(res)
}

// DeleteEMI removes an EMI owned by the given user. Expenses linked to the
// EMI keep their emi_id reference; orphans are tolerated.
func (r *Repository) DeleteEMI(userID, id int64) error {
	res, err := r.db.Exec(`DELETE FROM emis WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete emi: %w", err)
	}
	return checkAffected(res)
}
