package handler

import (
	"net/http"

	"github.com/rsharma/fintrack/internal/models"
)

// CreateEMI handles POST /emis
func (h *Handler) CreateEMI(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var emi models.EMI
	if !decodeBody(w, r, &emi) {
		return
	}
	created, err := h.svc.AddEMI(userID, emi)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListEMIs handles GET /emis, returning each EMI with its months-left figure
func (h *Handler) ListEMIs(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	emis, err := h.svc.ListEMIs(userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, emis)
}

// UpdateEMI handles PUT /emis/{id}
func (h *Handler) UpdateEMI(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var emi models.EMI
	if !decodeBody(w, r, &emi) {
		return
	}
	updated, err := h.svc.UpdateEMI(userID, id, emi)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteEMI handles DELETE /emis/{id}
func (h *Handler) DeleteEMI(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteEMI(userID, id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "emi deleted"})
}
