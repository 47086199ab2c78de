package projector

import "github.com/rsharma/fintrack/internal/models"

// AggregateByCategory groups projected expense entries by category and sums
// the amounts per group.
func AggregateByCategory(entries []ProjectedExpense) map[string]float64 {
	totals := make(map[string]float64, len(entries))
	for _, e := range entries {
		totals[e.Category] += e.Amount
	}
	return totals
}

// AggregateByPaymentMode groups projected expense entries by payment mode.
func AggregateByPaymentMode(entries []ProjectedExpense) map[string]float64 {
	totals := make(map[string]float64, len(entries))
	for _, e := range entries {
		totals[e.PaymentMode] += e.Amount
	}
	return totals
}

// ExpenseTotalForDate sums the projected expense entries dated on the given
// YYYY-MM-DD day. Entries with unparseable dates are ignored.
func ExpenseTotalForDate(entries []ProjectedExpense, date string) float64 {
	var total float64
	for _, e := range entries {
		if sameDay(e.Date, date) {
			total += e.Amount
		}
	}
	return total
}

// IncomeTotalForDate sums the projected income entries dated on the given day.
func IncomeTotalForDate(entries []models.Income, date string) float64 {
	var total float64
	for _, in := range entries {
		if sameDay(in.Date, date) {
			total += in.Amount
		}
	}
	return total
}

// NetForDate returns income minus expenses for one day of a projection.
func NetForDate(p Projection, date string) float64 {
	return IncomeTotalForDate(p.Income, date) - ExpenseTotalForDate(p.Expenses, date)
}

// MonthlyExpenseTotal sums every projected expense entry.
func MonthlyExpenseTotal(p Projection) float64 {
	var total float64
	for _, e := range p.Expenses {
		total += e.Amount
	}
	return total
}

// MonthlyIncomeTotal sums every projected income entry.
func MonthlyIncomeTotal(p Projection) float64 {
	var total float64
	for _, in := range p.Income {
		total += in.Amount
	}
	return total
}

func sameDay(a, b string) bool {
	ta, err := ParseDate(a)
	if err != nil {
		return false
	}
	tb, err := ParseDate(b)
	if err != nil {
		return false
	}
	return ta.Equal(tb)
}
