package handler

import (
	"net/http"

	"wolves-hub/internal/domain"
	"wolves-hub/internal/middleware"
	"wolves-hub/internal/service"
	"wolves-hub/pkg/errors"
	"wolves-hub/pkg/logger"
)

// AuthHandler handles authentication related requests
type AuthHandler struct {
	auth   service.AuthService
	logger *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, errors.NewAuthenticationError("User not authenticated"), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": claims})
}
