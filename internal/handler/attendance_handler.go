package handler

import (
	"net/http"

	"wolves-hub/internal/domain"
	"wolves-hub/internal/service"
	"wolves-hub/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// AttendanceHandler serves the attendance sheet
type AttendanceHandler struct {
	attendance service.AttendanceService
	logger     *logger.Logger
}

func NewAttendanceHandler(attendance service.AttendanceService, logger *logger.Logger) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, logger: logger}
}

// AttendanceSavedResponse is returned after a bulk update
type AttendanceSavedResponse struct {
	Message string                   `json:"message"`
	Summary domain.AttendanceSummary `json:"summary"`
}

// Sheet handles GET /api/attendance?date=YYYY-MM-DD
func (h *AttendanceHandler) Sheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.attendance.Sheet(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if sheet.Attendance == nil {
		sheet.Attendance = []domain.AttendanceEntry{}
	}
	respondJSON(w, http.StatusOK, sheet)
}

// Save handles PUT /api/attendance/{date}
func (h *AttendanceHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req domain.AttendanceUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	summary, err := h.attendance.Save(r.Context(), chi.URLParam(r, "date"), &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, AttendanceSavedResponse{
		Message: "Attendance updated",
		Summary: *summary,
	})
}
