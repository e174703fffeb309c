package repository

import (
	"context"
	"fmt"
	"time"

	"wolves-hub/internal/domain"
	"wolves-hub/pkg/database"

	"github.com/jackc/pgx/v5"
)

type AttendanceRepo struct {
	db *database.PostgresDB
}

func NewAttendanceRepository(db *database.PostgresDB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

func (r *AttendanceRepo) ListForDate(ctx context.Context, date time.Time) ([]domain.AttendanceEntry, error) {
	query := `
		SELECT p.id, p.name, p.position, p.short_position, p.frequency, p.status,
		       COALESCE(a.present, FALSE)
		FROM players p
		LEFT JOIN attendance a
		       ON a.player_id = p.id
		      AND a.training_date = $1
		WHERE NOT p.is_deleted
		ORDER BY p.name, p.id`

	rows, err := r.db.Pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.AttendanceEntry, 0)
	for rows.Next() {
		var e domain.AttendanceEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Position, &e.ShortPosition, &e.Frequency, &e.Status, &e.Present); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *AttendanceRepo) ListPresent(ctx context.Context, date time.Time) ([]*domain.Player, error) {
	query := `
		SELECT p.id, p.name, p.email, p.phone, p.position, p.short_position, p.frequency, p.status,
		       p.emergency_contact, p.medical_notes, p.created_at, p.updated_at
		FROM players p
		JOIN attendance a
		  ON a.player_id = p.id
		 AND a.training_date = $1
		 AND a.present
		WHERE NOT p.is_deleted AND p.status = $2
		ORDER BY p.name, p.id`

	rows, err := r.db.Pool.Query(ctx, query, date, domain.PlayerStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list present players: %w", err)
	}
	return collectPlayers(rows)
}

func (r *AttendanceRepo) BulkSave(ctx context.Context, date time.Time, records []domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance (training_date, player_id, present, note)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (training_date, player_id)
		DO UPDATE SET present = EXCLUDED.present, note = EXCLUDED.note`

	return database.WithTx(ctx, r.db.Pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, rec := range records {
			batch.Queue(query, date, rec.PlayerID, rec.Present, rec.Note)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			if hasPgCode(err, foreignKeyViolation) {
				return ErrUnknownPlayer
			}
			return fmt.Errorf("failed to save attendance: %w", err)
		}
		return nil
	})
}

func (r *AttendanceRepo) Summary(ctx context.Context, date time.Time) (*domain.AttendanceSummary, error) {
	query := `
		SELECT
			(SELECT COUNT(*)
			   FROM attendance a
			   JOIN players p ON p.id = a.player_id
			  WHERE a.training_date = $1 AND a.present AND NOT p.is_deleted),
			(SELECT COUNT(*) FROM players WHERE NOT is_deleted)`

	var summary domain.AttendanceSummary
	if err := r.db.Pool.QueryRow(ctx, query, date).Scan(&summary.Present, &summary.Total); err != nil {
		return nil, fmt.Errorf("failed to get attendance summary: %w", err)
	}
	summary.Percentage = domain.Percentage(summary.Present, summary.Total)
	return &summary, nil
}

func (r *AttendanceRepo) RecentSessions(ctx context.Context, limit int) ([]domain.SessionSummary, error) {
	query := `
		SELECT training_date, COUNT(*) FILTER (WHERE present), COUNT(*)
		FROM attendance
		GROUP BY training_date
		ORDER BY training_date DESC
		LIMIT $1`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]domain.SessionSummary, 0, limit)
	for rows.Next() {
		var (
			day time.Time
			s   domain.SessionSummary
		)
		if err := rows.Scan(&day, &s.Present, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.TrainingDate = day.Format(domain.DateLayout)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *AttendanceRepo) RecalculateFrequencies(ctx context.Context) error {
	query := `
		UPDATE players p
		SET frequency = s.frequency
		FROM (
			SELECT pl.id,
			       COALESCE(ROUND(100.0 * COUNT(a.id) FILTER (WHERE a.present) / NULLIF(COUNT(a.id), 0)), 0)::int AS frequency
			FROM players pl
			LEFT JOIN attendance a ON a.player_id = pl.id
			WHERE NOT pl.is_deleted
			GROUP BY pl.id
		) s
		WHERE p.id = s.id AND p.frequency IS DISTINCT FROM s.frequency`

	if _, err := r.db.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to recalculate frequencies: %w", err)
	}
	return nil
}

func (r *AttendanceRepo) PlayerHistory(ctx context.Context, since time.Time) ([]domain.PlayerSessions, error) {
	query := `
		SELECT p.id, p.name, p.status,
		       COUNT(a.id),
		       COUNT(a.id) FILTER (WHERE a.present)
		FROM players p
		LEFT JOIN attendance a
		       ON a.player_id = p.id
		      AND a.training_date >= $1
		WHERE NOT p.is_deleted
		GROUP BY p.id
		ORDER BY p.name, p.id`

	rows, err := r.db.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get player history: %w", err)
	}
	defer rows.Close()

	history := make([]domain.PlayerSessions, 0)
	for rows.Next() {
		var h domain.PlayerSessions
		if err := rows.Scan(&h.PlayerID, &h.Name, &h.Status, &h.TotalSessions, &h.PresentSessions); err != nil {
			return nil, fmt.Errorf("failed to scan player history: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func (r *AttendanceRepo) DistinctSessions(ctx context.Context, since time.Time) (int, error) {
	var sessions int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT training_date) FROM attendance WHERE training_date >= $1`,
		since,
	).Scan(&sessions)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return sessions, nil
}

func (r *AttendanceRepo) PresenceEntries(ctx context.Context, since time.Time) ([]domain.PresenceEntry, error) {
	query := `
		SELECT p.id, p.name, a.training_date
		FROM attendance a
		JOIN players p ON p.id = a.player_id
		WHERE a.present
		  AND NOT p.is_deleted
		  AND a.training_date >= $1
		ORDER BY p.name, a.training_date`

	rows, err := r.db.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list presence entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.PresenceEntry, 0)
	for rows.Next() {
		var (
			e   domain.PresenceEntry
			day time.Time
		)
		if err := rows.Scan(&e.PlayerID, &e.Name, &day); err != nil {
			return nil, fmt.Errorf("failed to scan presence entry: %w", err)
		}
		e.TrainingDate = day.Format(domain.DateLayout)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
