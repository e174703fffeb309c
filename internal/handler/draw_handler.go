package handler

import (
	"net/http"

	"wolves-hub/internal/domain"
	"wolves-hub/internal/service"
	"wolves-hub/pkg/logger"
)

// IdempotencyKeyHeader lets clients retry a draw submission safely
const IdempotencyKeyHeader = "Idempotency-Key"

// DrawHandler serves the team draw endpoints
type DrawHandler struct {
	draws  service.DrawService
	logger *logger.Logger
}

func NewDrawHandler(draws service.DrawService, logger *logger.Logger) *DrawHandler {
	return &DrawHandler{draws: draws, logger: logger}
}

// Create handles POST /api/team-draws
func (h *DrawHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.DrawRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	record, err := h.draws.Create(r.Context(), &req, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

// List handles GET /api/team-draws?limit=N
func (h *DrawHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", domain.DefaultDrawLimit)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	list, err := h.draws.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Get handles GET /api/team-draws/{id}
func (h *DrawHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	record, err := h.draws.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, record)
}
