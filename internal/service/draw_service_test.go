package service

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"wolves-hub/internal/domain"
	"wolves-hub/pkg/errors"
	"wolves-hub/pkg/teamdraw"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func newTestDrawService(players []*domain.Player, cache *CacheService) (*drawService, *fakeDrawRepo, *fakeAttendanceRepo) {
	draws := &fakeDrawRepo{}
	attendance := &fakeAttendanceRepo{present: map[string][]*domain.Player{}}
	svc := NewDrawService(draws, &fakePlayerRepo{players: players}, attendance, cache, zap.NewNop()).(*drawService)
	svc.now = fixedClock
	return svc, draws, attendance
}

func abcdRoster() []*domain.Player {
	return []*domain.Player{
		rosterPlayer(1, "A", "other"),
		rosterPlayer(2, "B", "other"),
		rosterPlayer(3, "C", "other"),
		rosterPlayer(4, "D", "other"),
	}
}

func teamNames(record *domain.DrawRecord) [][]string {
	out := make([][]string, len(record.Teams))
	for i, team := range record.Teams {
		out[i] = []string{}
		for _, p := range team.Players {
			out[i] = append(out[i], p.Name)
		}
	}
	return out
}

func assertAppError(t *testing.T, err error, expected errors.ErrorType) *errors.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, expected, appErr.Type)
	return appErr
}

func TestDrawService_Create(t *testing.T) {
	svc, draws, _ := newTestDrawService(abcdRoster(), nil)

	record, err := svc.Create(context.Background(), &domain.DrawRequest{
		TeamsCount: 2,
		DrawType:   teamdraw.ModeRandom,
		Seed:       strPtr("abc"),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "abc", record.Seed)
	assert.Equal(t, teamdraw.ModeRandom, record.DrawType)
	assert.Equal(t, 2, record.TeamsCount)
	assert.Equal(t, [][]string{{"D", "A"}, {"C", "B"}}, teamNames(record))
	assert.Equal(t, int64(4), *record.Teams[0].Players[0].PlayerID)

	require.Len(t, draws.saved, 1)
	assert.Equal(t, "abc", draws.saved[0].Seed)
}

func TestDrawService_Create_Seed(t *testing.T) {
	tests := []struct {
		name         string
		seed         *string
		expectedSeed string
		expectErr    bool
	}{
		{name: "missing seed derives from clock", seed: nil, expectedSeed: "lvo6m740"},
		{name: "seed is trimmed", seed: strPtr("  abc \t"), expectedSeed: "abc"},
		{name: "64 characters accepted", seed: strPtr(strings.Repeat("x", 64)), expectedSeed: strings.Repeat("x", 64)},
		{name: "32 astral symbols fill 64 code units", seed: strPtr(strings.Repeat("😀", 32)), expectedSeed: strings.Repeat("😀", 32)},
		{name: "65 characters rejected", seed: strPtr(strings.Repeat("x", 65)), expectErr: true},
		{name: "33 astral symbols rejected", seed: strPtr(strings.Repeat("😀", 33)), expectErr: true},
		{name: "blank seed rejected", seed: strPtr("   "), expectErr: true},
		{name: "empty seed rejected", seed: strPtr(""), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, draws, _ := newTestDrawService(abcdRoster(), nil)
			now := time.UnixMilli(1714590000000)
			svc.now = func() time.Time { return now }

			record, err := svc.Create(context.Background(), &domain.DrawRequest{
				TeamsCount: 2,
				DrawType:   teamdraw.ModeBalanced,
				Seed:       tt.seed,
			}, "")

			if tt.expectErr {
				appErr := assertAppError(t, err, errors.ErrorTypeValidation)
				assert.Contains(t, appErr.Details, "seed")
				assert.Empty(t, draws.saved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSeed, record.Seed)
		})
	}
}

func TestDrawService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   domain.DrawRequest
		field string
	}{
		{name: "one team", req: domain.DrawRequest{TeamsCount: 1, DrawType: teamdraw.ModeRandom}, field: "teamsCount"},
		{name: "nine teams", req: domain.DrawRequest{TeamsCount: 9, DrawType: teamdraw.ModeRandom}, field: "teamsCount"},
		{name: "unknown mode", req: domain.DrawRequest{TeamsCount: 2, DrawType: "snake"}, field: "drawType"},
		{name: "missing mode", req: domain.DrawRequest{TeamsCount: 2}, field: "drawType"},
		{name: "bad date", req: domain.DrawRequest{TeamsCount: 2, DrawType: teamdraw.ModeRandom, Date: strPtr("01/05/2024")}, field: "date"},
		{
			name:  "guest short position too long",
			req:   domain.DrawRequest{TeamsCount: 2, DrawType: teamdraw.ModeRandom, Guests: []domain.DrawGuest{{Name: "Guest", Position: "Goleiro", ShortPosition: "goalkeeper"}}},
			field: "guests[0].shortPosition",
		},
		{
			name:  "guest position too long",
			req:   domain.DrawRequest{TeamsCount: 2, DrawType: teamdraw.ModeRandom, Guests: []domain.DrawGuest{{Name: "Guest", Position: strings.Repeat("p", 61), ShortPosition: "gk"}}},
			field: "guests[0].position",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, draws, _ := newTestDrawService(abcdRoster(), nil)

			_, err := svc.Create(context.Background(), &tt.req, "")
			appErr := assertAppError(t, err, errors.ErrorTypeValidation)
			assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
			assert.Contains(t, appErr.Details, tt.field)
			assert.Empty(t, draws.saved)
		})
	}
}

func TestDrawService_Create_NoCandidates(t *testing.T) {
	svc, draws, _ := newTestDrawService(nil, nil)

	_, err := svc.Create(context.Background(), &domain.DrawRequest{TeamsCount: 2, DrawType: teamdraw.ModeRandom}, "")

	assertAppError(t, err, errors.ErrorTypeValidation)
	assert.ErrorIs(t, err, ErrNoCandidates)
	assert.Empty(t, draws.saved)
}

func TestDrawService_Create_InactivePlayersExcluded(t *testing.T) {
	roster := abcdRoster()
	roster[1].Status = domain.PlayerStatusInactive
	svc, _, _ := newTestDrawService(roster, nil)

	record, err := svc.Create(context.Background(), &domain.DrawRequest{TeamsCount: 2, DrawType: teamdraw.ModeRandom, Seed: strPtr("abc")}, "")
	require.NoError(t, err)

	var names []string
	for _, team := range teamNames(record) {
		names = append(names, team...)
	}
	assert.ElementsMatch(t, []string{"A", "C", "D"}, names)
}

func TestDrawService_Create_PresentOnDate(t *testing.T) {
	svc, _, attendance := newTestDrawService(abcdRoster(), nil)
	attendance.present["2024-05-01"] = []*domain.Player{
		rosterPlayer(10, "Joao", "atk"),
		rosterPlayer(11, "Maria", "atk"),
		rosterPlayer(12, "Pedro", "def"),
		rosterPlayer(13, "Ana", "def"),
	}

	record, err := svc.Create(context.Background(), &domain.DrawRequest{
		TeamsCount: 2,
		DrawType:   teamdraw.ModeBalanced,
		Seed:       strPtr("treino"),
		Date:       strPtr("2024-05-01"),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"Maria", "Pedro"}, {"Joao", "Ana"}}, teamNames(record))
	assert.Equal(t, "2024-05-01", attendance.lastDate.Format(domain.DateLayout))

	_, err = svc.Create(context.Background(), &domain.DrawRequest{
		TeamsCount: 2,
		DrawType:   teamdraw.ModeBalanced,
		Date:       strPtr("2024-05-02"),
	}, "")
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestDrawService_Create_GuestsFollowRoster(t *testing.T) {
	svc, _, _ := newTestDrawService(abcdRoster(), nil)

	record, err := svc.Create(context.Background(), &domain.DrawRequest{
		TeamsCount: 2,
		DrawType:   teamdraw.ModeRandom,
		Seed:       strPtr("abc"),
		Guests:     []domain.DrawGuest{{Name: "G", Position: "Convidado", ShortPosition: "gst"}},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"C", "D", "B"}, {"G", "A"}}, teamNames(record))
	guest := record.Teams[1].Players[0]
	assert.Nil(t, guest.PlayerID)
	assert.Equal(t, "gst", guest.ShortPosition)
	assert.Equal(t, 1, guest.TeamIndex)
}

func TestDrawService_Create_PersistenceFailure(t *testing.T) {
	svc, draws, _ := newTestDrawService(abcdRoster(), nil)
	storeErr := stderrors.New("connection refused")
	draws.err = storeErr

	_, err := svc.Create(context.Background(), &domain.DrawRequest{TeamsCount: 2, DrawType: teamdraw.ModeRandom, Seed: strPtr("abc")}, "")

	appErr := assertAppError(t, err, errors.ErrorTypePersistence)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.StatusCode)
	assert.ErrorIs(t, err, ErrDrawNotSaved)
	assert.ErrorIs(t, err, storeErr)
}

func TestDrawService_Create_Idempotency(t *testing.T) {
	mr, cache := newTestCache(t)
	svc, draws, _ := newTestDrawService(abcdRoster(), cache)
	ctx := context.Background()
	req := &domain.DrawRequest{TeamsCount: 2, DrawType: teamdraw.ModeRandom, Seed: strPtr("abc")}

	_, err := svc.Create(ctx, req, "req-1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("prod:draws:idempotency:req-1"))

	_, err = svc.Create(ctx, req, "req-1")
	appErr := assertAppError(t, err, errors.ErrorTypeConflict)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
	assert.Len(t, draws.saved, 1)

	_, err = svc.Create(ctx, req, "req-2")
	require.NoError(t, err)
	assert.Len(t, draws.saved, 2)
}

func TestDrawService_Create_FailedSaveReleasesIdempotencyKey(t *testing.T) {
	mr, cache := newTestCache(t)
	svc, draws, _ := newTestDrawService(abcdRoster(), cache)
	ctx := context.Background()
	req := &domain.DrawRequest{TeamsCount: 2, DrawType: teamdraw.ModeRandom, Seed: strPtr("abc")}

	draws.err = stderrors.New("timeout")
	_, err := svc.Create(ctx, req, "req-1")
	assert.ErrorIs(t, err, ErrDrawNotSaved)
	assert.False(t, mr.Exists("prod:draws:idempotency:req-1"))

	draws.err = nil
	_, err = svc.Create(ctx, req, "req-1")
	assert.NoError(t, err)
}

func TestDrawService_Create_InvalidatesRecentDraws(t *testing.T) {
	mr, cache := newTestCache(t)
	svc, _, _ := newTestDrawService(abcdRoster(), cache)
	ctx := context.Background()

	mr.Set("prod:draws:recent:0:5", "[]")

	record, err := svc.Create(ctx, &domain.DrawRequest{TeamsCount: 2, DrawType: teamdraw.ModeRandom}, "")
	require.NoError(t, err)

	assert.False(t, mr.Exists("prod:draws:recent:0:5"))
	gen, err := mr.Get("prod:draws:generation")
	require.NoError(t, err)
	assert.Equal(t, "1", gen)
	assert.Eventually(t, func() bool {
		return mr.Exists("prod:draws:id:1")
	}, time.Second, 10*time.Millisecond)

	list, err := svc.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, record.ID, list.Items[0].ID)
}

func TestDrawService_Get(t *testing.T) {
	svc, _, _ := newTestDrawService(abcdRoster(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.DrawRequest{TeamsCount: 3, DrawType: teamdraw.ModeBalanced, Seed: strPtr("replay")}, "")
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.Get(ctx, 999)
	appErr := assertAppError(t, err, errors.ErrorTypeNotFound)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestDrawService_Get_ReadsThroughCache(t *testing.T) {
	mr, cache := newTestCache(t)
	svc, draws, _ := newTestDrawService(abcdRoster(), cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.DrawRequest{TeamsCount: 2, DrawType: teamdraw.ModeRandom, Seed: strPtr("abc")}, "")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return mr.Exists("prod:draws:id:1")
	}, time.Second, 10*time.Millisecond)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, draws.getCount())
	assert.Equal(t, teamNames(created), teamNames(got))
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	mr.Set("prod:draws:id:1", "{not json")
	got, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, draws.getCount())
	assert.Equal(t, created.Seed, got.Seed)
}

func TestDrawService_ListRecent(t *testing.T) {
	svc, _, _ := newTestDrawService(abcdRoster(), nil)
	ctx := context.Background()

	list, err := svc.ListRecent(ctx, domain.DefaultDrawLimit)
	require.NoError(t, err)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)

	for _, seed := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, &domain.DrawRequest{TeamsCount: 2, DrawType: teamdraw.ModeRandom, Seed: strPtr(seed)}, "")
		require.NoError(t, err)
	}

	list, err = svc.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "three", list.Items[0].Seed)
	assert.Equal(t, "two", list.Items[1].Seed)

	for _, limit := range []int{0, -1, 26} {
		_, err := svc.ListRecent(ctx, limit)
		appErr := assertAppError(t, err, errors.ErrorTypeValidation)
		assert.Contains(t, appErr.Details, "limit")
	}
}
