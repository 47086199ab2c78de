package models

// Expense represents a single expense record. Date is carried as a
// YYYY-MM-DD string; parsing happens where the value is consumed so a bad
// date in one record never poisons a whole listing.
type Expense struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"user_id"`
	Date             string  `json:"date"`
	Amount           float64 `json:"amount"`
	Category         string  `json:"category"`
	PaymentMode      string  `json:"payment_mode"`
	PaymentAccountID *int64  `json:"payment_account_id,omitempty"`
	Note             string  `json:"note,omitempty"`
	EMIID            *int64  `json:"emi_id,omitempty"`
	IsRecurring      bool    `json:"is_recurring"`
	RecurringType    string  `json:"recurring_type,omitempty"` // monthly or yearly, set iff IsRecurring
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}
