package models

// Payment modes
const (
	PaymentModeCash       = "Cash"
	PaymentModeUPI        = "UPI"
	PaymentModeCreditCard = "Credit Card"
	PaymentModeDebitCard  = "Debit Card"
)

// Recurring types
const (
	RecurringMonthly = "monthly"
	RecurringYearly  = "yearly"
)

// CategoryOther is the fallback bucket for unknown categories and sources.
const CategoryOther = "Other"

// PaymentModes lists the accepted payment modes.
var PaymentModes = []string{
	PaymentModeCash,
	PaymentModeUPI,
	PaymentModeCreditCard,
	PaymentModeDebitCard,
}

// ExpenseCategories lists the accepted expense categories.
var ExpenseCategories = []string{
	"Food", "Transport", "Shopping", "Bills", "Entertainment", "Health",
	"Recharge", "Room Rent", "Groceries", "Fuel", "Education", "Insurance",
	"Taxes", "Gifts", "Travel", "Utilities", CategoryOther,
}

// IncomeSources lists the accepted income sources.
var IncomeSources = []string{
	"Salary", "Freelance", "Investment", "Business", "Bonus",
	"Rental Income", "Interest", "Commission", CategoryOther,
}

// ValidPaymentMode reports whether mode is one of the accepted payment modes.
func ValidPaymentMode(mode string) bool {
	return contains(PaymentModes, mode)
}

// ValidRecurringType reports whether t is monthly or yearly.
func ValidRecurringType(t string) bool {
	return t == RecurringMonthly || t == RecurringYearly
}

// NormalizeExpenseCategory maps unknown categories to Other.
func NormalizeExpenseCategory(category string) string {
	if contains(ExpenseCategories, category) {
		return category
	}
	return CategoryOther
}

// NormalizeIncomeSource maps unknown sources to Other.
func NormalizeIncomeSource(source string) string {
	if contains(IncomeSources, source) {
		return source
	}
	return CategoryOther
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
