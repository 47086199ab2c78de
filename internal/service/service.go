package service

import (
	"time"

	"github.com/rsharma/fintrack/internal/config"
	"github.com/rsharma/fintrack/internal/models"
	"github.com/rsharma/fintrack/internal/projector"
	"github.com/rsharma/fintrack/internal/repository"
	"github.com/sirupsen/logrus"
)

// Store is the persistence surface the service depends on. Implemented by
// repository.Repository; tests substitute an in-memory fake.
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	ListUserEmails() ([]models.User, error)

	StoreRefreshToken(userID int64, tokenHash string, expiresAt time.Time) error
	FindRefreshToken(userID int64, tokenHash string) error

	CreateExpense(e *models.Expense) error
	ListExpenses(userID int64, filter repository.ExpenseFilter) ([]models.Expense, error)
	UpdateExpense(e *models.Expense) error
	DeleteExpense(userID, id int64) error

	CreateIncome(in *models.Income) error
	ListIncome(userID int64, filter repository.IncomeFilter) ([]models.Income, error)
	UpdateIncome(in *models.Income) error
	DeleteIncome(userID, id int64) error

	CreateEMI(emi *models.EMI) error
	ListEMIs(userID int64) ([]models.EMI, error)
	UpdateEMI(emi *models.EMI) error
	DeleteEMI(userID, id int64) error

	CreatePaymentAccount(a *models.PaymentAccount) error
	ListPaymentAccounts(userID int64) ([]models.PaymentAccount, error)
}

// Service handles business logic
type Service struct {
	repo   Store
	log    *logrus.Logger
	config *config.Config
	proj   *projector.Projector
	now    func() time.Time
}

// NewService initializes a new service. A nil clock means time.Now.
func NewService(repo Store, log *logrus.Logger, cfg *config.Config, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:   repo,
		log:    log,
		config: cfg,
		proj:   projector.New(log, now),
		now:    now,
	}
}
