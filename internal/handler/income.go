package handler

import (
	"net/http"

	"github.com/rsharma/fintrack/internal/models"
	"github.com/rsharma/fintrack/internal/repository"
)

// CreateIncome handles POST /income
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var in models.Income
	if !decodeBody(w, r, &in) {
		return
	}
	created, err := h.svc.AddIncome(userID, in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListIncome handles GET /income with optional start_date, end_date and
// source filters
func (h *Handler) ListIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := repository.IncomeFilter{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Source:    q.Get("source"),
	}
	income, err := h.svc.ListIncome(userID, filter)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, income)
}

// UpdateIncome handles PUT /income/{id}
func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in models.Income
	if !decodeBody(w, r, &in) {
		return
	}
	updated, err := h.svc.UpdateIncome(userID, id, in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteIncome handles DELETE /income/{id}
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteIncome(userID, id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "income deleted"})
}
