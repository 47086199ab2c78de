package handler

import (
	"net/http"

	"github.com/rsharma/fintrack/internal/models"
	"github.com/rsharma/fintrack/internal/service"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	User   *models.User      `json:"user"`
	Tokens service.TokenPair `json:"tokens"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, tokens, err := h.svc.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{User: user, Tokens: tokens})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, tokens, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{User: user, Tokens: tokens})
}

// Refresh rotates a refresh token into a new token pair
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tokens, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokens)
}

// Verify returns the authenticated user's profile
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	user, err := h.svc.GetUser(userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}
