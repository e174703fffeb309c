package service

import (
	"context"

	"wolves-hub/internal/domain"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Login checks the credentials and issues an access token
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken validates an access token and returns its claims
	ValidateToken(ctx context.Context, token string) (*domain.AuthClaims, error)

	// EnsureAdminUser creates the first operator account when no user exists
	EnsureAdminUser(ctx context.Context, email, password string) error
}

// PlayerService defines the interface for roster management
type PlayerService interface {
	List(ctx context.Context) ([]*domain.Player, error)
	Get(ctx context.Context, id int64) (*domain.Player, error)
	Create(ctx context.Context, in *domain.PlayerInput) (*domain.Player, error)
	Update(ctx context.Context, id int64, update *domain.PlayerUpdate) (*domain.Player, error)
	Delete(ctx context.Context, id int64) error
}

// AttendanceService defines the interface for attendance tracking
type AttendanceService interface {
	// Sheet returns the attendance of every player on date, today when date is empty
	Sheet(ctx context.Context, date string) (*domain.AttendanceSheet, error)

	// Save upserts the records of date and refreshes player frequencies
	Save(ctx context.Context, date string, req *domain.AttendanceUpdateRequest) (*domain.AttendanceSummary, error)
}

// HistoryService defines the interface for attendance analytics
type HistoryService interface {
	Report(ctx context.Context, days int) (*domain.HistoryReport, error)
	Entries(ctx context.Context, days int) (*domain.PresenceReport, error)
}

// DashboardService defines the interface for the overview page
type DashboardService interface {
	Get(ctx context.Context) (*domain.Dashboard, error)
}

// DrawService defines the interface for team draws
type DrawService interface {
	// Create runs a draw and persists it. A non-empty idempotencyKey rejects
	// repeated submissions of the same key.
	Create(ctx context.Context, req *domain.DrawRequest, idempotencyKey string) (*domain.DrawRecord, error)

	// Get replays a stored draw
	Get(ctx context.Context, id int64) (*domain.DrawRecord, error)

	// ListRecent returns the latest draws, newest first
	ListRecent(ctx context.Context, limit int) (*domain.DrawList, error)
}

// Services aggregates all service interfaces
type Services struct {
	Auth       AuthService
	Player     PlayerService
	Attendance AttendanceService
	History    HistoryService
	Dashboard  DashboardService
	Draw       DrawService
}
