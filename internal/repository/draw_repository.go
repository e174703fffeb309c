package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wolves-hub/internal/domain"
	"wolves-hub/pkg/database"
	"wolves-hub/pkg/teamdraw"

	"github.com/jackc/pgx/v5"
)

type DrawRepo struct {
	db *database.PostgresDB
}

func NewDrawRepository(db *database.PostgresDB) *DrawRepo {
	return &DrawRepo{db: db}
}

type drawRow struct {
	ID         int64
	Seed       string
	DrawType   string
	TeamsCount int
	CreatedAt  time.Time
}

type entryRow struct {
	DrawID        int64
	TeamIndex     int
	PlayerID      *int64
	Name          string
	Position      *string
	ShortPosition *string
}

// Create inserts the draw header and its entries in one transaction. Entries
// are copied in team order so their ids preserve the member order on replay.
func (r *DrawRepo) Create(ctx context.Context, draw *domain.NewDraw) (*domain.DrawRecord, error) {
	row := drawRow{
		Seed:       draw.Seed,
		DrawType:   string(draw.DrawType),
		TeamsCount: draw.TeamsCount,
	}

	var entries []entryRow
	for _, team := range draw.Teams {
		for _, p := range team.Players {
			position, short := p.Position, p.ShortPosition
			entries = append(entries, entryRow{
				TeamIndex:     team.Index,
				PlayerID:      p.PlayerID,
				Name:          p.Name,
				Position:      &position,
				ShortPosition: &short,
			})
		}
	}

	err := database.WithTx(ctx, r.db.Pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO team_draws (seed, draw_type, teams_count)
			 VALUES ($1, $2, $3)
			 RETURNING id, created_at`,
			row.Seed, row.DrawType, row.TeamsCount,
		).Scan(&row.ID, &row.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert draw: %w", err)
		}

		if len(entries) == 0 {
			return nil
		}

		copyRows := make([][]any, len(entries))
		for i := range entries {
			entries[i].DrawID = row.ID
			e := entries[i]
			copyRows[i] = []any{e.DrawID, e.TeamIndex, e.PlayerID, e.Name, e.Position, e.ShortPosition}
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"team_draw_entries"},
			[]string{"draw_id", "team_index", "player_id", "player_name", "player_position", "player_short_position"},
			pgx.CopyFromRows(copyRows),
		)
		if err != nil {
			return fmt.Errorf("failed to insert draw entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return assembleRecord(row, entries), nil
}

func (r *DrawRepo) GetByID(ctx context.Context, id int64) (*domain.DrawRecord, error) {
	var row drawRow
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, seed, draw_type, teams_count, created_at
		 FROM team_draws
		 WHERE id = $1`,
		id,
	).Scan(&row.ID, &row.Seed, &row.DrawType, &row.TeamsCount, &row.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw: %w", err)
	}

	grouped, err := r.entriesFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return assembleRecord(row, grouped[id]), nil
}

func (r *DrawRepo) ListRecent(ctx context.Context, limit int) ([]*domain.DrawRecord, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, seed, draw_type, teams_count, created_at
		 FROM team_draws
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list draws: %w", err)
	}

	draws, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (drawRow, error) {
		var d drawRow
		err := row.Scan(&d.ID, &d.Seed, &d.DrawType, &d.TeamsCount, &d.CreatedAt)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan draws: %w", err)
	}

	records := make([]*domain.DrawRecord, 0, len(draws))
	if len(draws) == 0 {
		return records, nil
	}

	ids := make([]int64, len(draws))
	for i, d := range draws {
		ids[i] = d.ID
	}

	grouped, err := r.entriesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, d := range draws {
		records = append(records, assembleRecord(d, grouped[d.ID]))
	}
	return records, nil
}

// entriesFor loads the entries of the given draws grouped by draw id, each
// group ordered by team then insertion order
func (r *DrawRepo) entriesFor(ctx context.Context, ids []int64) (map[int64][]entryRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT draw_id, team_index, player_id, player_name, player_position, player_short_position
		 FROM team_draw_entries
		 WHERE draw_id = ANY($1)
		 ORDER BY draw_id, team_index, id`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw entries: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]entryRow, len(ids))
	for rows.Next() {
		var e entryRow
		if err := rows.Scan(&e.DrawID, &e.TeamIndex, &e.PlayerID, &e.Name, &e.Position, &e.ShortPosition); err != nil {
			return nil, fmt.Errorf("failed to scan draw entry: %w", err)
		}
		grouped[e.DrawID] = append(grouped[e.DrawID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load draw entries: %w", err)
	}
	return grouped, nil
}

// assembleRecord rebuilds the stored record from its rows. Every team index
// below TeamsCount is present even when it received nobody.
func assembleRecord(row drawRow, entries []entryRow) *domain.DrawRecord {
	teams := make([]domain.DrawTeam, row.TeamsCount)
	for i := range teams {
		teams[i] = domain.DrawTeam{Index: i, Players: []domain.DrawEntry{}}
	}

	for _, e := range entries {
		if e.TeamIndex < 0 || e.TeamIndex >= len(teams) {
			continue
		}
		teams[e.TeamIndex].Players = append(teams[e.TeamIndex].Players, domain.DrawEntry{
			PlayerID:      e.PlayerID,
			Name:          e.Name,
			Position:      deref(e.Position),
			ShortPosition: deref(e.ShortPosition),
			TeamIndex:     e.TeamIndex,
		})
	}

	return &domain.DrawRecord{
		ID:         row.ID,
		Seed:       row.Seed,
		DrawType:   teamdraw.Mode(row.DrawType),
		TeamsCount: row.TeamsCount,
		CreatedAt:  row.CreatedAt,
		Teams:      teams,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
