package models

// EMI represents an installment loan with a fixed monthly payment.
// TotalMonths is the full term; the months still left is derived from
// StartDate and the current date, never stored.
type EMI struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"user_id"`
	Name             string  `json:"name"`
	Amount           float64 `json:"amount"`
	StartDate        string  `json:"start_date"`
	DueDay           int     `json:"due_day"` // 1-31
	TotalMonths      int     `json:"total_months"`
	PaymentAccountID int64   `json:"payment_account_id"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}
