package repository

import (
	"context"
	"errors"
	"time"

	"wolves-hub/internal/domain"
)

// ErrDuplicateEmail is returned when a player or user email is already taken
var ErrDuplicateEmail = errors.New("email already registered")

// ErrUnknownPlayer is returned when attendance references a missing player
var ErrUnknownPlayer = errors.New("unknown player")

// PlayerRepository defines the interface for roster operations.
// Soft-deleted players are invisible to every method.
type PlayerRepository interface {
	// List returns every player ordered by name
	List(ctx context.Context) ([]*domain.Player, error)

	// ListActive returns players with active status ordered by name
	ListActive(ctx context.Context) ([]*domain.Player, error)

	// GetByID returns nil, nil when the player does not exist
	GetByID(ctx context.Context, id int64) (*domain.Player, error)

	Create(ctx context.Context, player *domain.Player) (*domain.Player, error)

	Update(ctx context.Context, player *domain.Player) (*domain.Player, error)

	// SoftDelete hides a player and marks it inactive. It reports whether a row changed.
	SoftDelete(ctx context.Context, id int64) (bool, error)

	Stats(ctx context.Context) (*domain.PlayerStats, error)
}

// AttendanceRepository defines the interface for attendance data operations
type AttendanceRepository interface {
	// ListForDate returns every roster player with their presence on date
	ListForDate(ctx context.Context, date time.Time) ([]domain.AttendanceEntry, error)

	// ListPresent returns active players marked present on date ordered by name
	ListPresent(ctx context.Context, date time.Time) ([]*domain.Player, error)

	// BulkSave upserts all records for date in one transaction
	BulkSave(ctx context.Context, date time.Time, records []domain.AttendanceRecord) error

	Summary(ctx context.Context, date time.Time) (*domain.AttendanceSummary, error)

	RecentSessions(ctx context.Context, limit int) ([]domain.SessionSummary, error)

	// RecalculateFrequencies stores each player's overall presence percentage
	RecalculateFrequencies(ctx context.Context) error

	PlayerHistory(ctx context.Context, since time.Time) ([]domain.PlayerSessions, error)

	DistinctSessions(ctx context.Context, since time.Time) (int, error)

	PresenceEntries(ctx context.Context, since time.Time) ([]domain.PresenceEntry, error)
}

// DrawRepository defines the interface for team draw persistence
type DrawRepository interface {
	// Create stores the draw and its entries atomically and returns the stored record
	Create(ctx context.Context, draw *domain.NewDraw) (*domain.DrawRecord, error)

	// GetByID returns nil, nil when the draw does not exist
	GetByID(ctx context.Context, id int64) (*domain.DrawRecord, error)

	// ListRecent returns up to limit draws, newest first
	ListRecent(ctx context.Context, limit int) ([]*domain.DrawRecord, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetByEmail returns nil, nil when no user has that email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	Count(ctx context.Context) (int, error)

	Create(ctx context.Context, user *domain.User) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Player     PlayerRepository
	Attendance AttendanceRepository
	Draw       DrawRepository
	User       UserRepository
}
