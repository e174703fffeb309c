package handler

import (
	"net/http"

	"wolves-hub/internal/domain"
	"wolves-hub/internal/service"
	"wolves-hub/pkg/logger"
)

// PlayerHandler serves the roster endpoints
type PlayerHandler struct {
	players service.PlayerService
	logger  *logger.Logger
}

func NewPlayerHandler(players service.PlayerService, logger *logger.Logger) *PlayerHandler {
	return &PlayerHandler{players: players, logger: logger}
}

// List handles GET /api/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if players == nil {
		players = []*domain.Player{}
	}
	respondJSON(w, http.StatusOK, players)
}

// Get handles GET /api/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	player, err := h.players.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, player)
}

// Create handles POST /api/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.PlayerInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	player, err := h.players.Create(r.Context(), &in)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, player)
}

// Update handles PUT /api/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	var update domain.PlayerUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	player, err := h.players.Update(r.Context(), id, &update)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, player)
}

// Delete handles DELETE /api/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	if err := h.players.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
