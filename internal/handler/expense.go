package handler

import (
	"net/http"

	"github.com/rsharma/fintrack/internal/models"
	"github.com/rsharma/fintrack/internal/repository"
)

// CreateExpense handles POST /expenses
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var e models.Expense
	if !decodeBody(w, r, &e) {
		return
	}
	created, err := h.svc.AddExpense(userID, e)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListExpenses handles GET /expenses with optional start_date, end_date and
// category filters
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := repository.ExpenseFilter{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Category:  q.Get("category"),
	}
	expenses, err := h.svc.ListExpenses(userID, filter)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

// UpdateExpense handles PUT /expenses/{id}
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var e models.Expense
	if !decodeBody(w, r, &e) {
		return
	}
	updated, err := h.svc.UpdateExpense(userID, id, e)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteExpense handles DELETE /expenses/{id}
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteExpense(userID, id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}
