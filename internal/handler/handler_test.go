package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rsharma/fintrack/internal/config"
	"github.com/rsharma/fintrack/internal/middleware"
	"github.com/rsharma/fintrack/internal/models"
	"github.com/rsharma/fintrack/internal/repository"
	"github.com/rsharma/fintrack/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a minimal in-memory service.Store for router-level tests.
type memStore struct {
	nextID   int64
	users    map[int64]*models.User
	tokens   map[int64]string
	expenses map[int64]models.Expense
	income   map[int64]models.Income
	emis     map[int64]models.EMI
	accounts map[int64]models.PaymentAccount
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]*models.User{},
		tokens:   map[int64]string{},
		expenses: map[int64]models.Expense{},
		income:   map[int64]models.Income{},
		emis:     map[int64]models.EMI{},
		accounts: map[int64]models.PaymentAccount{},
	}
}

func (m *memStore) id() int64 { m.nextID++; return m.nextID }

func (m *memStore) CreateUser(u *models.User) error {
	u.ID = m.id()
	m.users[u.ID] = u
	return nil
}

func (m *memStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) FindUserByID(id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListUserEmails() ([]models.User, error) { return nil, nil }

func (m *memStore) StoreRefreshToken(userID int64, hash string, _ time.Time) error {
	m.tokens[userID] = hash
	return nil
}

func (m *memStore) FindRefreshToken(userID int64, hash string) error {
	if m.tokens[userID] != hash {
		return repository.ErrNotFound
	}
	return nil
}

func (m *memStore) CreateExpense(e *models.Expense) error {
	e.ID = m.id()
	m.expenses[e.ID] = *e
	return nil
}

func (m *memStore) ListExpenses(userID int64, _ repository.ExpenseFilter) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range m.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) UpdateExpense(e *models.Expense) error {
	old, ok := m.expenses[e.ID]
	if !ok || old.UserID != e.UserID {
		return repository.ErrNotFound
	}
	m.expenses[e.ID] = *e
	return nil
}

func (m *memStore) DeleteExpense(userID, id int64) error {
	e, ok := m.expenses[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.expenses, id)
	return nil
}

func (m *memStore) CreateIncome(in *models.Income) error {
	in.ID = m.id()
	m.income[in.ID] = *in
	return nil
}

func (m *memStore) ListIncome(userID int64, _ repository.IncomeFilter) ([]models.Income, error) {
	var out []models.Income
	for _, in := range m.income {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (m *memStore) UpdateIncome(in *models.Income) error {
	old, ok := m.income[in.ID]
	if !ok || old.UserID != in.UserID {
		return repository.ErrNotFound
	}
	m.income[in.ID] = *in
	return nil
}

func (m *memStore) DeleteIncome(userID, id int64) error {
	in, ok := m.income[id]
	if !ok || in.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.income, id)
	return nil
}

func (m *memStore) CreateEMI(e *models.EMI) error {
	e.ID = m.id()
	m.emis[e.ID] = *e
	return nil
}

func (m *memStore) ListEMIs(userID int64) ([]models.EMI, error) {
	var out []models.EMI
	for _, e := range m.emis {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) UpdateEMI(e *models.EMI) error {
	old, ok := m.emis[e.ID]
	if !ok || old.UserID != e.UserID {
		return repository.ErrNotFound
	}
	m.emis[e.ID] = *e
	return nil
}

func (m *memStore) DeleteEMI(userID, id int64) error {
	e, ok := m.emis[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.emis, id)
	return nil
}

func (m *memStore) CreatePaymentAccount(a *models.PaymentAccount) error {
	a.ID = m.id()
	m.accounts[a.ID] = *a
	return nil
}

func (m *memStore) ListPaymentAccounts(userID int64) ([]models.PaymentAccount, error) {
	var out []models.PaymentAccount
	for _, a := range m.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// newTestRouter wires the handler under the same routes main uses.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: "access-secret", RefreshSecret: "refresh-secret"}
	svc := service.NewService(newMemStore(), log, cfg, nil)
	h := NewHandler(svc, log)

	r := mux.NewRouter()
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/refresh", h.Refresh).Methods("POST")
	auth := r.PathPrefix("/").Subrouter()
	auth.Use(middleware.AuthMiddleware(cfg))
	auth.HandleFunc("/verify", h.Verify).Methods("GET")
	auth.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	auth.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	auth.HandleFunc("/expenses/{id:[0-9]+}", h.UpdateExpense).Methods("PUT")
	auth.HandleFunc("/expenses/{id:[0-9]+}", h.DeleteExpense).Methods("DELETE")
	auth.HandleFunc("/emis", h.CreateEMI).Methods("POST")
	auth.HandleFunc("/emis", h.ListEMIs).Methods("GET")
	auth.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	auth.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	auth.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	auth.HandleFunc("/calendar", h.Calendar).Methods("GET")
	auth.HandleFunc("/reports", h.Reports).Methods("GET")
	auth.HandleFunc("/reports/export", h.ExportReport).Methods("GET")
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, router *mux.Router) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/register", "", map[string]string{
		"name": "Ravi", "email": "ravi@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp authResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Tokens.AccessToken)
	return resp.Tokens.AccessToken
}

func TestAuthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/register", "", map[string]string{
		"name": "Ravi", "email": "ravi@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var reg authResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reg))

	rec = doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"email": "ravi@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"email": "ravi@example.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/refresh", "", map[string]string{
		"refresh_token": reg.Tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/verify", reg.Tokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/verify", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpenseEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router)

	rec := doJSON(t, router, http.MethodPost, "/expenses", token, models.Expense{
		Date: "2024-07-10", Amount: 250, Category: "Food", PaymentMode: models.PaymentModeUPI,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Expense
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotZero(t, created.ID)

	rec = doJSON(t, router, http.MethodPost, "/expenses", token, models.Expense{
		Date: "2024-07-10", Amount: 250, Category: "Food", PaymentMode: "Barter",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/expenses", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Expense
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	assert.Len(t, listed, 1)

	path := fmt.Sprintf("/expenses/%d", created.ID)
	rec = doJSON(t, router, http.MethodPut, path, token, models.Expense{
		Date: "2024-07-11", Amount: 300, Category: "Food", PaymentMode: models.PaymentModeCash,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardAndCalendarEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router)

	rec := doJSON(t, router, http.MethodPost, "/accounts", token, models.PaymentAccount{
		Name: "GPay", Type: models.PaymentModeUPI,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/emis", token, models.EMI{
		Name: "Laptop", Amount: 4500, StartDate: "2024-01-15",
		DueDay: 5, TotalMonths: 240, PaymentAccountID: 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash service.DashboardData
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dash))
	assert.Len(t, dash.EMIs, 1)
	assert.Len(t, dash.Accounts, 1)

	rec = doJSON(t, router, http.MethodGet, "/calendar?year=2024&month=7", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cal service.CalendarData
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cal))
	assert.Len(t, cal.Days, 31)

	rec = doJSON(t, router, http.MethodGet, "/calendar?year=2024&month=13", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/reports?year=2024&month=7&period=quarter", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report service.ReportData
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, "quarter", report.Period)

	rec = doJSON(t, router, http.MethodGet, "/reports/export?year=2024&month=7", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<FinancialReport")
}
