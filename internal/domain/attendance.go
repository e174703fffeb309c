package domain

import "math"

// DateLayout is the format of training dates (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// AttendanceRecord is one row of a bulk attendance update
type AttendanceRecord struct {
	PlayerID int64   `json:"playerId" validate:"gt=0"`
	Present  bool    `json:"present"`
	Note     *string `json:"note,omitempty"`
}

// AttendanceUpdateRequest represents the body of PUT /api/attendance/{date}
type AttendanceUpdateRequest struct {
	Records []AttendanceRecord `json:"records" validate:"required,min=1,dive"`
}

// AttendanceEntry is a roster row of the attendance sheet for one date
type AttendanceEntry struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	ShortPosition string `json:"short_position"`
	Frequency     int    `json:"frequency"`
	Status        string `json:"status"`
	Present       bool   `json:"present"`
}

// AttendanceSummary counts presences on a date
type AttendanceSummary struct {
	Present    int `json:"present"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// AttendanceSheet is the response of GET /api/attendance
type AttendanceSheet struct {
	Date       string            `json:"date"`
	Summary    AttendanceSummary `json:"summary"`
	Attendance []AttendanceEntry `json:"attendance"`
}

// SessionSummary aggregates one training session
type SessionSummary struct {
	TrainingDate string `json:"trainingDate"`
	Present      int    `json:"present"`
	Total        int    `json:"total"`
}

// PlayerSessions is the raw per-player count over a history window
type PlayerSessions struct {
	PlayerID        int64
	Name            string
	Status          string
	TotalSessions   int
	PresentSessions int
}

// PlayerFrequency is a per-player line of the history report
type PlayerFrequency struct {
	PlayerID   int64  `json:"player_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Sessions   int    `json:"sessions"`
	Present    int    `json:"present"`
	Percentage int    `json:"percentage"`
}

// HistoryReport is the response of GET /api/history
type HistoryReport struct {
	Trainings        int               `json:"trainings"`
	AverageFrequency int               `json:"average_frequency"`
	Above90          int               `json:"above_90"`
	Below80          int               `json:"below_80"`
	PerPlayer        []PlayerFrequency `json:"per_player"`
	Days             int               `json:"days"`
	StartDate        string            `json:"start_date"`
}

// PresenceEntry is one presence of a player in the history window
type PresenceEntry struct {
	PlayerID     int64  `json:"player_id"`
	Name         string `json:"name"`
	TrainingDate string `json:"training_date"`
}

// PresenceReport is the response of GET /api/history/entries
type PresenceReport struct {
	Days      int             `json:"days"`
	StartDate string          `json:"start_date"`
	Entries   []PresenceEntry `json:"entries"`
}

// TodayAttendance is the attendance summary shown on the dashboard
type TodayAttendance struct {
	Date string `json:"date"`
	AttendanceSummary
}

// Dashboard is the response of GET /api/dashboard
type Dashboard struct {
	Players         PlayerStats      `json:"players"`
	AttendanceToday TodayAttendance  `json:"attendanceToday"`
	RecentSessions  []SessionSummary `json:"recentSessions"`
}

// Percentage returns part/total as a rounded percentage, 0 when total is 0
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
