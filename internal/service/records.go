package service

import (
	"fmt"

	"github.com/rsharma/fintrack/internal/models"
	"github.com/rsharma/fintrack/internal/projector"
	"github.com/rsharma/fintrack/internal/repository"
)

// EMIView is an EMI with its derived months-left figure.
type EMIView struct {
	models.EMI
	MonthsLeft int `json:"months_left"`
}

// AddExpense validates and stores an expense for the user.
func (s *Service) AddExpense(userID int64, e models.Expense) (*models.Expense, error) {
	e.UserID = userID
	if err := s.validateExpense(&e); err != nil {
		return nil, err
	}
	if err := s.repo.CreateExpense(&e); err != nil {
		return nil, err
	}
	s.log.Infof("Expense created for user %d: %s %.2f", userID, e.Category, e.Amount)
	return &e, nil
}

// ListExpenses returns the user's expenses, optionally filtered.
func (s *Service) ListExpenses(userID int64, filter repository.ExpenseFilter) ([]models.Expense, error) {
	return s.repo.ListExpenses(userID, filter)
}

// UpdateExpense validates and applies an edit to a user's expense.
func (s *Service) UpdateExpense(userID, id int64, e models.Expense) (*models.Expense, error) {
	e.ID = id
	e.UserID = userID
	if err := s.validateExpense(&e); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateExpense(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExpense removes a user's expense. Linked EMI or account references
// elsewhere are not cleaned up.
func (s *Service) DeleteExpense(userID, id int64) error {
	return s.repo.DeleteExpense(userID, id)
}

// AddIncome validates and stores an income record for the user.
func (s *Service) AddIncome(userID int64, in models.Income) (*models.Income, error) {
	in.UserID = userID
	if err := s.validateIncome(&in); err != nil {
		return nil, err
	}
	if err := s.repo.CreateIncome(&in); err != nil {
		return nil, err
	}
	s.log.Infof("Income created for user %d: %s %.2f", userID, in.Source, in.Amount)
	return &in, nil
}

// ListIncome returns the user's income records, optionally filtered.
func (s *Service) ListIncome(userID int64, filter repository.IncomeFilter) ([]models.Income, error) {
	return s.repo.ListIncome(userID, filter)
}

// UpdateIncome validates and applies an edit to a user's income record.
func (s *Service) UpdateIncome(userID, id int64, in models.Income) (*models.Income, error) {
	in.ID = id
	in.UserID = userID
	if err := s.validateIncome(&in); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateIncome(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// DeleteIncome removes a user's income record.
func (s *Service) DeleteIncome(userID, id int64) error {
	return s.repo.DeleteIncome(userID, id)
}

// AddEMI validates and stores an EMI for the user.
func (s *Service) AddEMI(userID int64, emi models.EMI) (*models.EMI, error) {
	emi.UserID = userID
	if err := validateEMI(&emi); err != nil {
		return nil, err
	}
	if err := s.repo.CreateEMI(&emi); err != nil {
		return nil, err
	}
	s.log.Infof("EMI created for user %d: %s", userID, emi.Name)
	return &emi, nil
}

// ListEMIs returns the user's EMIs with derived months-left values.
func (s *Service) ListEMIs(userID int64) ([]EMIView, error) {
	emis, err := s.repo.ListEMIs(userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]EMIView, len(emis))
	for i, emi := range emis {
		views[i] = EMIView{EMI: emi, MonthsLeft: projector.RemainingMonths(emi, now)}
	}
	return views, nil
}

// UpdateEMI validates and applies an edit to a user's EMI.
func (s *Service) UpdateEMI(userID, id int64, emi models.EMI) (*models.EMI, error) {
	emi.ID = id
	emi.UserID = userID
	if err := validateEMI(&emi); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEMI(&emi); err != nil {
		return nil, err
	}
	return &emi, nil
}

// DeleteEMI removes a user's EMI. Expenses referencing it keep the stale link.
func (s *Service) DeleteEMI(userID, id int64) error {
	return s.repo.DeleteEMI(userID, id)
}

// AddAccount validates and stores a payment account. Accounts cannot be
// edited afterwards.
func (s *Service) AddAccount(userID int64, a models.PaymentAccount) (*models.PaymentAccount, error) {
	a.UserID = userID
	if a.Name == "" {
		return nil, fmt.Errorf("account name is required")
	}
	if !models.ValidPaymentMode(a.Type) {
		return nil, fmt.Errorf("invalid account type: %s", a.Type)
	}
	if err := s.repo.CreatePaymentAccount(&a); err != nil {
		return nil, err
	}
	s.log.Infof("Payment account created for user %d: %s", userID, a.Name)
	return &a, nil
}

// ListAccounts returns the user's payment accounts.
func (s *Service) ListAccounts(userID int64) ([]models.PaymentAccount, error) {
	return s.repo.ListPaymentAccounts(userID)
}

func (s *Service) validateExpense(e *models.Expense) error {
	if _, err := projector.ParseDate(e.Date); err != nil {
		return fmt.Errorf("invalid date: %s", e.Date)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if !models.ValidPaymentMode(e.PaymentMode) {
		return fmt.Errorf("invalid payment mode: %s", e.PaymentMode)
	}
	// Free-text categories collapse into Other rather than failing.
	e.Category = models.NormalizeExpenseCategory(e.Category)
	return validateRecurrence(e.IsRecurring, e.RecurringType)
}

func (s *Service) validateIncome(in *models.Income) error {
	if _, err := projector.ParseDate(in.Date); err != nil {
		return fmt.Errorf("invalid date: %s", in.Date)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	in.Source = models.NormalizeIncomeSource(in.Source)
	return validateRecurrence(in.IsRecurring, in.RecurringType)
}

func validateEMI(emi *models.EMI) error {
	if emi.Name == "" {
		return fmt.Errorf("emi name is required")
	}
	if _, err := projector.ParseDate(emi.StartDate); err != nil {
		return fmt.Errorf("invalid start date: %s", emi.StartDate)
	}
	if emi.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if emi.DueDay < 1 || emi.DueDay > 31 {
		return fmt.Errorf("due day must be between 1 and 31")
	}
	if emi.TotalMonths < 1 {
		return fmt.Errorf("total months must be at least 1")
	}
	if emi.PaymentAccountID == 0 {
		return fmt.Errorf("payment account is required")
	}
	return nil
}

// validateRecurrence enforces the invariant that a recurring type is set if
// and only if the recurrence flag is.
func validateRecurrence(isRecurring bool, recurringType string) error {
	if isRecurring {
		if !models.ValidRecurringType(recurringType) {
			return fmt.Errorf("invalid recurring type: %q", recurringType)
		}
		return nil
	}
	if recurringType != "" {
		return fmt.Errorf("recurring type set on a non-recurring record")
	}
	return nil
}
