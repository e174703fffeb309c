package domain

import (
	"time"

	"wolves-hub/pkg/teamdraw"
)

// Team draw boundary limits
const (
	MinDrawTeams     = 2
	MaxDrawTeams     = 8
	MaxSeedLength    = 64
	DefaultDrawLimit = 5
	MaxDrawLimit     = 25
)

// DrawRequest represents the body of POST /api/team-draws.
// Date restricts the draw to players marked present on that day; without it
// the whole active roster takes part.
type DrawRequest struct {
	TeamsCount int           `json:"teamsCount" validate:"min=2,max=8"`
	DrawType   teamdraw.Mode `json:"drawType" validate:"oneof=balanced random"`
	Seed       *string       `json:"seed,omitempty"`
	Date       *string       `json:"date,omitempty"`
	Guests     []DrawGuest   `json:"guests,omitempty" validate:"omitempty,max=40,dive"`
}

// DrawGuest is a participant that is not on the roster. Lengths match the
// snapshot columns of team_draw_entries.
type DrawGuest struct {
	Name          string `json:"name" validate:"required,max=120"`
	Position      string `json:"position" validate:"max=60"`
	ShortPosition string `json:"shortPosition" validate:"max=8"`
}

// DrawEntry is a player snapshot inside a stored draw
type DrawEntry struct {
	PlayerID      *int64 `json:"playerId"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	ShortPosition string `json:"shortPosition"`
	TeamIndex     int    `json:"teamIndex"`
}

// DrawTeam is one team of a stored draw
type DrawTeam struct {
	Index   int         `json:"index"`
	Players []DrawEntry `json:"players"`
}

// DrawRecord is an immutable stored draw, served verbatim on replay
type DrawRecord struct {
	ID         int64         `json:"id"`
	Seed       string        `json:"seed"`
	DrawType   teamdraw.Mode `json:"drawType"`
	TeamsCount int           `json:"teamsCount"`
	CreatedAt  time.Time     `json:"createdAt"`
	Teams      []DrawTeam    `json:"teams"`
}

// NewDraw is a computed draw waiting to be persisted
type NewDraw struct {
	Seed       string
	DrawType   teamdraw.Mode
	TeamsCount int
	Teams      []DrawTeam
}

// DrawList is the response of GET /api/team-draws
type DrawList struct {
	Items []*DrawRecord `json:"items"`
}

// NewDrawTeams copies the attributes of every member so later roster edits
// do not change the stored draw.
func NewDrawTeams(teams []teamdraw.Team) []DrawTeam {
	out := make([]DrawTeam, len(teams))
	for i, team := range teams {
		players := make([]DrawEntry, 0, len(team.Members))
		for _, m := range team.Members {
			var id *int64
			if m.ID != nil {
				v := *m.ID
				id = &v
			}
			players = append(players, DrawEntry{
				PlayerID:      id,
				Name:          m.Name,
				Position:      m.Position,
				ShortPosition: m.ShortPosition,
				TeamIndex:     team.Index,
			})
		}
		out[i] = DrawTeam{Index: team.Index, Players: players}
	}
	return out
}

// Candidate converts a roster player into a draw candidate
func (p *Player) Candidate() teamdraw.Candidate {
	id := p.ID
	return teamdraw.Candidate{
		ID:            &id,
		Name:          p.Name,
		Position:      p.Position,
		ShortPosition: p.ShortPosition,
	}
}

// Candidate converts a guest into a draw candidate without roster ID
func (g DrawGuest) Candidate() teamdraw.Candidate {
	return teamdraw.Candidate{
		Name:          g.Name,
		Position:      g.Position,
		ShortPosition: g.ShortPosition,
	}
}
