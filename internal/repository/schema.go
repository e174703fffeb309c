package repository

import (
	"context"
	"fmt"

	"wolves-hub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var schemaUp = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(40),
		position VARCHAR(60) NOT NULL,
		short_position VARCHAR(4) NOT NULL,
		frequency INTEGER NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
		emergency_contact TEXT,
		medical_notes TEXT,
		is_deleted BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_players_status ON players(status) WHERE NOT is_deleted`,

	`CREATE TABLE IF NOT EXISTS attendance (
		id BIGSERIAL PRIMARY KEY,
		training_date DATE NOT NULL,
		player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		present BOOLEAN NOT NULL DEFAULT false,
		note TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (training_date, player_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_player ON attendance(player_id)`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS team_draws (
		id BIGSERIAL PRIMARY KEY,
		seed VARCHAR(64) NOT NULL,
		draw_type VARCHAR(16) NOT NULL,
		teams_count INTEGER NOT NULL CHECK (teams_count BETWEEN 2 AND 8),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_team_draws_recent ON team_draws(created_at DESC, id DESC)`,

	// player_id is a snapshot, not a reference: draws outlive roster edits
	`CREATE TABLE IF NOT EXISTS team_draw_entries (
		id BIGSERIAL PRIMARY KEY,
		draw_id BIGINT NOT NULL REFERENCES team_draws(id) ON DELETE CASCADE,
		team_index INTEGER NOT NULL,
		player_id BIGINT,
		player_name VARCHAR(120) NOT NULL,
		player_position VARCHAR(60) NOT NULL,
		player_short_position VARCHAR(8) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_team_draw_entries_draw ON team_draw_entries(draw_id, team_index, id)`,
}

var schemaDown = []string{
	`DROP TABLE IF EXISTS team_draw_entries CASCADE`,
	`DROP TABLE IF EXISTS team_draws CASCADE`,
	`DROP TABLE IF EXISTS attendance CASCADE`,
	`DROP TABLE IF EXISTS users CASCADE`,
	`DROP TABLE IF EXISTS players CASCADE`,
}

// Migrate creates every table the API needs. It is safe to run repeatedly.
func Migrate(ctx context.Context, db DBTX) error {
	for _, query := range schemaUp {
		if _, err := db.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}
	return nil
}

// DropSchema removes every table created by Migrate
func DropSchema(ctx context.Context, db DBTX) error {
	for _, query := range schemaDown {
		if _, err := db.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }

// SeedPlayers is the demo roster inserted into an empty database
var SeedPlayers = []domain.Player{
	{
		Name: "Joao Silva", Email: "joao@email.com", Phone: strPtr("(11) 99999-9999"),
		Position: "Ataque", ShortPosition: "atk", Frequency: 92, Status: domain.PlayerStatusActive,
		EmergencyContact: strPtr("Ana Silva - (11) 98888-7766"), MedicalNotes: strPtr("Nenhuma"),
	},
	{
		Name: "Maria Santos", Email: "maria@email.com", Phone: strPtr("(11) 98888-7777"),
		Position: "Ataque", ShortPosition: "atk", Frequency: 88, Status: domain.PlayerStatusActive,
		EmergencyContact: strPtr("Carlos Santos - (11) 97777-5544"), MedicalNotes: strPtr("Alergia leve a anti-inflamatorios"),
	},
	{
		Name: "Pedro Costa", Email: "pedro@email.com", Phone: strPtr("(11) 97777-6644"),
		Position: "Defesa", ShortPosition: "def", Frequency: 76, Status: domain.PlayerStatusActive,
		EmergencyContact: strPtr("Fernanda Costa - (11) 96666-3322"), MedicalNotes: strPtr("Historico de lesao no joelho esquerdo"),
	},
	{
		Name: "Ana Oliveira", Email: "ana@email.com", Phone: strPtr("(11) 96666-1122"),
		Position: "Defesa", ShortPosition: "def", Frequency: 95, Status: domain.PlayerStatusInactive,
		EmergencyContact: strPtr("Paulo Oliveira - (11) 95555-8822"), MedicalNotes: strPtr("Recuperacao de torcao no tornozelo"),
	},
}

// Seed inserts SeedPlayers when the roster is empty and reports how many
// players were added
func Seed(ctx context.Context, db DBTX) (int, error) {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, p := range SeedPlayers {
		tag, err := db.Exec(ctx, `
			INSERT INTO players (
				name, email, phone, position, short_position, frequency, status,
				emergency_contact, medical_notes
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (email) DO NOTHING`,
			p.Name, p.Email, p.Phone, p.Position, p.ShortPosition, p.Frequency, p.Status,
			p.EmergencyContact, p.MedicalNotes,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed player %s: %w", p.Email, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
