package models

// Income represents a single income record
type Income struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	Source        string  `json:"source"`
	Note          string  `json:"note,omitempty"`
	IsRecurring   bool    `json:"is_recurring"`
	RecurringType string  `json:"recurring_type,omitempty"` // monthly or yearly, set iff IsRecurring
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}
