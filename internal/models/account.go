package models

// PaymentAccount represents a payment instrument (cash, UPI handle, card).
// Accounts are immutable after creation.
type PaymentAccount struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Type      string `json:"type"` // one of PaymentModes
	Name      string `json:"name"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"created_at"`
}
