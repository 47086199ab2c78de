package handler

import (
	"net/http"

	"github.com/rsharma/fintrack/internal/models"
)

// CreateAccount handles POST /accounts. Accounts have no update or delete.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var a models.PaymentAccount
	if !decodeBody(w, r, &a) {
		return
	}
	created, err := h.svc.AddAccount(userID, a)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListAccounts handles GET /accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	accounts, err := h.svc.ListAccounts(userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}
