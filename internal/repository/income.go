package repository

import (
	"fmt"
	"time"

	"github.com/rsharma/fintrack/internal/models"
)

// IncomeFilter narrows an income listing. Zero values mean no filter.
type IncomeFilter struct {
	StartDate string
	EndDate   string
	Source    string
}

// CreateIncome inserts an income record
func (r *Repository) CreateIncome(in *models.Income) error {
	query := `
		INSERT INTO income (user_id, date, amount, source, note, is_recurring, recurring_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	var createdAt, updatedAt time.Time
	err := r.db.QueryRow(query, in.UserID, in.Date, in.Amount, in.Source, in.Note, in.IsRecurring, in.RecurringType).
		Scan(&in.ID, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	in.CreatedAt = createdAt.Format(time.RFC3339)
	in.UpdatedAt = updatedAt.Format(time.RFC3339)
	return nil
}

// ListIncome returns all income records for a user, newest first, optionally
// narrowed by an inclusive date range and/or a source.
func (r *Repository) ListIncome(userID int64, filter IncomeFilter) ([]models.Income, error) {
	query := `
		SELECT id, user_id, date, amount, source, note, is_recurring, COALESCE(recurring_type, ''), created_at, updated_at
		FROM income
		WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.StartDate != "" && filter.EndDate != "" {
		query += fmt.Sprintf(" AND date >= $%d AND date <= $%d", len(args)+1, len(args)+2)
		args = append(args, filter.StartDate, filter.EndDate)
	}
	if filter.Source != "" {
		query += fmt.Sprintf(" AND source = $%d", len(args)+1)
		args = append(args, filter.Source)
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	defer rows.Close()

	var records []models.Income
	for rows.Next() {
		var in models.Income
		var date, createdAt, updatedAt time.Time
		if err := rows.Scan(&in.ID, &in.UserID, &date, &in.Amount, &in.Source, &in.Note,
			&in.IsRecurring, &in.RecurringType, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		in.Date = date.Format(dateLayout)
		in.CreatedAt = createdAt.Format(time.RFC3339)
		in.UpdatedAt = updatedAt.Format(time.RFC3339)
		records = append(records, in)
	}
	return records, rows.Err()
}

// UpdateIncome updates an income record owned by the given user
func (r *Repository) UpdateIncome(in *models.Income) error {
	query := `
		UPDATE income
		SET date = $1, amount = $2, source = $3, note = $4, is_recurring = $5,
		    recurring_type = NULLIF($6, ''), updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8`
	res, err := r.db.Exec(query, in.Date, in.Amount, in.Source, in.Note, in.IsRecurring, in.RecurringType, in.ID, in.UserID)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return checkAffected(res)
}

// DeleteIncome removes an income record owned by the given user
func (r *Repository) DeleteIncome(userID, id int64) error {
	res, err := r.db.Exec(`DELETE FROM income WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return checkAffected(res)
}
