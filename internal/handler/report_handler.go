package handler

import (
	"net/http"
	"strconv"

	"wolves-hub/internal/domain"
	"wolves-hub/internal/service"
	"wolves-hub/pkg/logger"
)

// ReportHandler serves the dashboard and the attendance history
type ReportHandler struct {
	dashboard service.DashboardService
	history   service.HistoryService
	logger    *logger.Logger
}

func NewReportHandler(dashboard service.DashboardService, history service.HistoryService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, history: history, logger: logger}
}

// Dashboard handles GET /api/dashboard
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboard.Get(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

// History handles GET /api/history?days=N
func (h *ReportHandler) History(w http.ResponseWriter, r *http.Request) {
	report, err := h.history.Report(r.Context(), historyDays(r))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Entries handles GET /api/history/entries?days=N
func (h *ReportHandler) Entries(w http.ResponseWriter, r *http.Request) {
	report, err := h.history.Entries(r.Context(), historyDays(r))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if report.Entries == nil {
		report.Entries = []domain.PresenceEntry{}
	}
	respondJSON(w, http.StatusOK, report)
}

// historyDays reads the days parameter. Anything unparsable selects the
// default window.
func historyDays(r *http.Request) int {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		return 0
	}
	return days
}
