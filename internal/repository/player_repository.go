package repository

import (
	"context"
	"errors"
	"fmt"

	"wolves-hub/internal/domain"
	"wolves-hub/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

const playerColumns = `
	id, name, email, phone, position, short_position, frequency, status,
	emergency_contact, medical_notes, created_at, updated_at`

type PlayerRepo struct {
	db *database.PostgresDB
}

func NewPlayerRepository(db *database.PostgresDB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Position,
		&p.ShortPosition,
		&p.Frequency,
		&p.Status,
		&p.EmergencyContact,
		&p.MedicalNotes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPlayers(rows pgx.Rows) ([]*domain.Player, error) {
	defer rows.Close()

	players := make([]*domain.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func isUniqueViolation(err error) bool {
	return hasPgCode(err, uniqueViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// List returns every visible player ordered by name
func (r *PlayerRepo) List(ctx context.Context) ([]*domain.Player, error) {
	query := `SELECT` + playerColumns + `
		FROM players
		WHERE NOT is_deleted
		ORDER BY name, id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return collectPlayers(rows)
}

// ListActive returns the roster eligible for a draw
func (r *PlayerRepo) ListActive(ctx context.Context) ([]*domain.Player, error) {
	query := `SELECT` + playerColumns + `
		FROM players
		WHERE NOT is_deleted AND status = $1
		ORDER BY name, id`

	rows, err := r.db.Pool.Query(ctx, query, domain.PlayerStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active players: %w", err)
	}
	return collectPlayers(rows)
}

func (r *PlayerRepo) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	query := `SELECT` + playerColumns + `
		FROM players
		WHERE id = $1 AND NOT is_deleted`

	p, err := scanPlayer(r.db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

func (r *PlayerRepo) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	query := `
		INSERT INTO players (
			name, email, phone, position, short_position, frequency, status,
			emergency_contact, medical_notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING` + playerColumns

	created, err := scanPlayer(r.db.Pool.QueryRow(ctx, query,
		player.Name,
		player.Email,
		player.Phone,
		player.Position,
		player.ShortPosition,
		player.Frequency,
		player.Status,
		player.EmergencyContact,
		player.MedicalNotes,
	))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return created, nil
}

// Update writes every mutable column of player. It returns nil, nil when the
// player vanished in the meantime.
func (r *PlayerRepo) Update(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	query := `
		UPDATE players SET
			name = $2,
			email = $3,
			phone = $4,
			position = $5,
			short_position = $6,
			frequency = $7,
			status = $8,
			emergency_contact = $9,
			medical_notes = $10,
			updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
		RETURNING` + playerColumns

	updated, err := scanPlayer(r.db.Pool.QueryRow(ctx, query,
		player.ID,
		player.Name,
		player.Email,
		player.Phone,
		player.Position,
		player.ShortPosition,
		player.Frequency,
		player.Status,
		player.EmergencyContact,
		player.MedicalNotes,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return updated, nil
}

func (r *PlayerRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE players
		SET is_deleted = TRUE, status = $2, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted`

	tag, err := r.db.Pool.Exec(ctx, query, id, domain.PlayerStatusInactive)
	if err != nil {
		return false, fmt.Errorf("failed to delete player: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PlayerRepo) Stats(ctx context.Context) (*domain.PlayerStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE frequency >= $2)
		FROM players
		WHERE NOT is_deleted`

	var stats domain.PlayerStats
	err := r.db.Pool.QueryRow(ctx, query, domain.PlayerStatusActive, domain.HighFrequencyThreshold).
		Scan(&stats.Total, &stats.Active, &stats.HighFrequency)
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}
	return &stats, nil
}
