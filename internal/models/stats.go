package models

// DashboardStats represents aggregate figures shown on the dashboard
type DashboardStats struct {
	TotalExpenses   float64 `json:"total_expenses"`
	TotalIncome     float64 `json:"total_income"`
	NetAmount       float64 `json:"net_amount"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyNet      float64 `json:"monthly_net"`
}

// CategoryAmount is one slice of a category breakdown
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// DayTotals holds per-date totals for the calendar view
type DayTotals struct {
	Date     string  `json:"date"` // Format: YYYY-MM-DD
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
	Net      float64 `json:"net"`
}

// MonthlyTrendPoint is one month of the reports trend chart
type MonthlyTrendPoint struct {
	Month    string  `json:"month"` // Jan, Feb, ...
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
}

// EMISummary is the reports view of a single EMI
type EMISummary struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	DueDay     int     `json:"due_day"`
	MonthsLeft int     `json:"months_left"`
}
