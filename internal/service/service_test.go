package service

import (
	"io"
	"time"

	"github.com/rsharma/fintrack/internal/config"
	"github.com/rsharma/fintrack/internal/models"
	"github.com/rsharma/fintrack/internal/repository"
	"github.com/sirupsen/logrus"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	nextID   int64
	users    map[int64]*models.User
	tokens   map[int64]string // userID -> token hash
	expenses map[int64]models.Expense
	income   map[int64]models.Income
	emis     map[int64]models.EMI
	accounts map[int64]models.PaymentAccount
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]*models.User),
		tokens:   make(map[int64]string),
		expenses: make(map[int64]models.Expense),
		income:   make(map[int64]models.Income),
		emis:     make(map[int64]models.EMI),
		accounts: make(map[int64]models.PaymentAccount),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateUser(user *models.User) error {
	user.ID = f.id()
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) FindUserByID(id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) ListUserEmails() ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) StoreRefreshToken(userID int64, tokenHash string, expiresAt time.Time) error {
	f.tokens[userID] = tokenHash
	return nil
}

func (f *fakeStore) FindRefreshToken(userID int64, tokenHash string) error {
	if f.tokens[userID] != tokenHash {
		return repository.ErrNotFound
	}
	return nil
}

func (f *fakeStore) CreateExpense(e *models.Expense) error {
	e.ID = f.id()
	f.expenses[e.ID] = *e
	return nil
}

func (f *fakeStore) ListExpenses(userID int64, filter repository.ExpenseFilter) ([]models.Expense, error) {
	out := make([]models.Expense, 0, len(f.expenses))
	for _, e := range f.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateExpense(e *models.Expense) error {
	existing, ok := f.expenses[e.ID]
	if !ok || existing.UserID != e.UserID {
		return repository.ErrNotFound
	}
	f.expenses[e.ID] = *e
	return nil
}

func (f *fakeStore) DeleteExpense(userID, id int64) error {
	e, ok := f.expenses[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeStore) CreateIncome(in *models.Income) error {
	in.ID = f.id()
	f.income[in.ID] = *in
	return nil
}

func (f *fakeStore) ListIncome(userID int64, filter repository.IncomeFilter) ([]models.Income, error) {
	out := make([]models.Income, 0, len(f.income))
	for _, in := range f.income {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateIncome(in *models.Income) error {
	existing, ok := f.income[in.ID]
	if !ok || existing.UserID != in.UserID {
		return repository.ErrNotFound
	}
	f.income[in.ID] = *in
	return nil
}

func (f *fakeStore) DeleteIncome(userID, id int64) error {
	in, ok := f.income[id]
	if !ok || in.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.income, id)
	return nil
}

func (f *fakeStore) CreateEMI(emi *models.EMI) error {
	emi.ID = f.id()
	f.emis[emi.ID] = *emi
	return nil
}

func (f *fakeStore) ListEMIs(userID int64) ([]models.EMI, error) {
	out := make([]models.EMI, 0, len(f.emis))
	for _, e := range f.emis {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateEMI(emi *models.EMI) error {
	existing, ok := f.emis[emi.ID]
	if !ok || existing.UserID != emi.UserID {
		return repository.ErrNotFound
	}
	f.emis[emi.ID] = *emi
	return nil
}

func (f *fakeStore) DeleteEMI(userID, id int64) error {
	e, ok := f.emis[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.emis, id)
	return nil
}

func (f *fakeStore) CreatePaymentAccount(a *models.PaymentAccount) error {
	a.ID = f.id()
	f.accounts[a.ID] = *a
	return nil
}

func (f *fakeStore) ListPaymentAccounts(userID int64) ([]models.PaymentAccount, error) {
	out := make([]models.PaymentAccount, 0, len(f.accounts))
	for _, a := range f.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func testService(store *fakeStore, now func() time.Time) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{
		JWTSecret:     "access-secret",
		RefreshSecret: "refresh-secret",
	}
	return NewService(store, log, cfg, now)
}
