package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rsharma/fintrack/internal/models"
)

// ExpenseFilter narrows an expense listing. Zero values mean no filter.
type ExpenseFilter struct {
	StartDate string
	EndDate   string
	Category  string
}

// CreateExpense inserts an expense record
func (r *Repository) CreateExpense(e *models.Expense) error {
	query := `
		INSERT INTO expenses (user_id, date, amount, category, payment_mode, payment_account_id, note, emi_id, is_recurring, recurring_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	var createdAt, updatedAt time.Time
	err := r.db.QueryRow(query, e.UserID, e.Date, e.Amount, e.Category, e.PaymentMode,
		e.PaymentAccountID, e.Note, e.EMIID, e.IsRecurring, e.RecurringType).
		Scan(&e.ID, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	e.CreatedAt = createdAt.Format(time.RFC3339)
	e.UpdatedAt = updatedAt.Format(time.RFC3339)
	return nil
}

// ListExpenses returns all expenses for a user, newest first, optionally
// narrowed by an inclusive date range and/or a category.
func (r *Repository) ListExpenses(userID int64, filter ExpenseFilter) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, date, amount, category, payment_mode, payment_account_id, note, emi_id, is_recurring, COALESCE(recurring_type, ''), created_at, updated_at
		FROM expenses
		WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.StartDate != "" && filter.EndDate != "" {
		query += fmt.Sprintf(" AND date >= $%d AND date <= $%d", len(args)+1, len(args)+2)
		args = append(args, filter.StartDate, filter.EndDate)
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", len(args)+1)
		args = append(args, filter.Category)
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// UpdateExpense updates an expense owned by the given user
func (r *Repository) UpdateExpense(e *models.Expense) error {
	query := `
		UPDATE expenses
		SET date = $1, amount = $2, category = $3, payment_mode = $4, payment_account_id = $5,
		    note = $6, emi_id = $7, is_recurring = $8, recurring_type = NULLIF($9, ''), updated_at = CURRENT_TIMESTAMP
		WHERE id = $10 AND user_id = $11`
	res, err := r.db.Exec(query, e.Date, e.Amount, e.Category, e.PaymentMode, e.PaymentAccountID,
		e.Note, e.EMIID, e.IsRecurring, e.RecurringType, e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return checkAffected(res)
}

// DeleteExpense removes an expense owned by the given user. Records linking
// to the expense's EMI or account are left untouched.
func (r *Repository) DeleteExpense(userID, id int64) error {
	res, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return checkAffected(res)
}

func scanExpense(rows *sql.Rows) (models.Expense, error) {
	var e models.Expense
	var date, createdAt, updatedAt time.Time
	err := rows.Scan(&e.ID, &e.UserID, &date, &e.Amount, &e.Category, &e.PaymentMode,
		&e.PaymentAccountID, &e.Note, &e.EMIID, &e.IsRecurring, &e.RecurringType, &createdAt, &updatedAt)
	if err != nil {
		return e, fmt.Errorf("failed to scan expense: %w", err)
	}
	e.Date = date.Format(dateLayout)
	e.CreatedAt = createdAt.Format(time.RFC3339)
	e.UpdatedAt = updatedAt.Format(time.RFC3339)
	return e, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
