package domain

import (
	"encoding/json"
	"testing"
	"time"

	"wolves-hub/pkg/teamdraw"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDrawTeams_SnapshotsMembers(t *testing.T) {
	id := int64(42)
	teams := []teamdraw.Team{
		{Index: 0, Members: []teamdraw.Candidate{{ID: &id, Name: "Joao Silva", Position: "Ataque", ShortPosition: "atk"}}},
		{Index: 1, Members: []teamdraw.Candidate{{Name: "Guest", Position: "Convidado", ShortPosition: "gst"}}},
		{Index: 2, Members: []teamdraw.Candidate{}},
	}

	out := NewDrawTeams(teams)

	require.Len(t, out, 3)
	require.Len(t, out[0].Players, 1)
	assert.Equal(t, int64(42), *out[0].Players[0].PlayerID)
	assert.Equal(t, 0, out[0].Players[0].TeamIndex)
	assert.Nil(t, out[1].Players[0].PlayerID)
	assert.Equal(t, 1, out[1].Players[0].TeamIndex)
	assert.NotNil(t, out[2].Players)

	// editing the source afterwards must not leak into the snapshot
	id = 7
	teams[0].Members[0].Name = "Renamed"
	assert.Equal(t, int64(42), *out[0].Players[0].PlayerID)
	assert.Equal(t, "Joao Silva", out[0].Players[0].Name)
}

func TestDrawRecord_JSONShape(t *testing.T) {
	record := DrawRecord{
		ID:         3,
		Seed:       "abc",
		DrawType:   teamdraw.ModeRandom,
		TeamsCount: 2,
		CreatedAt:  time.Date(2024, 5, 1, 19, 30, 0, 0, time.UTC),
		Teams: NewDrawTeams([]teamdraw.Team{
			{Index: 0, Members: []teamdraw.Candidate{{Name: "Guest", Position: "Convidado", ShortPosition: "gst"}}},
			{Index: 1, Members: []teamdraw.Candidate{}},
		}),
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 3,
		"seed": "abc",
		"drawType": "random",
		"teamsCount": 2,
		"createdAt": "2024-05-01T19:30:00Z",
		"teams": [
			{"index": 0, "players": [{"playerId": null, "name": "Guest", "position": "Convidado", "shortPosition": "gst", "teamIndex": 0}]},
			{"index": 1, "players": []}
		]
	}`, string(data))
}

func TestPlayerUpdate_Apply(t *testing.T) {
	phone := "(11) 99999-9999"
	player := &Player{Name: "Pedro Costa", Phone: &phone, Position: "Defesa", ShortPosition: "def", Status: PlayerStatusActive}

	empty := ""
	name := "Pedro C."
	status := PlayerStatusInactive
	update := PlayerUpdate{Name: &name, Phone: &empty, Status: &status}
	update.Apply(player)

	assert.Equal(t, "Pedro C.", player.Name)
	assert.Nil(t, player.Phone)
	assert.Equal(t, PlayerStatusInactive, player.Status)
	assert.Equal(t, "Defesa", player.Position)
	assert.Equal(t, "def", player.ShortPosition)
}
