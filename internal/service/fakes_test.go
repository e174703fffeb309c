package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"wolves-hub/internal/domain"
	"wolves-hub/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestCache(t *testing.T) (*miniredis.Miniredis, *CacheService) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient("redis://"+mr.Addr(), "production", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewCacheService(client, zap.NewNop())
}

func rosterPlayer(id int64, name, short string) *domain.Player {
	return &domain.Player{
		ID:            id,
		Name:          name,
		Email:         name + "@wolves.com",
		Position:      "Position " + short,
		ShortPosition: short,
		Status:        domain.PlayerStatusActive,
	}
}

type fakePlayerRepo struct {
	mu       sync.Mutex
	players  []*domain.Player
	stats    domain.PlayerStats
	err      error
	createFn func(p *domain.Player) (*domain.Player, error)
}

func (f *fakePlayerRepo) List(ctx context.Context) ([]*domain.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.players, f.err
}

func (f *fakePlayerRepo) ListActive(ctx context.Context) ([]*domain.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Player
	for _, p := range f.players {
		if p.Status == domain.PlayerStatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlayerRepo) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.players {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePlayerRepo) Create(ctx context.Context, p *domain.Player) (*domain.Player, error) {
	if f.createFn != nil {
		return f.createFn(p)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = int64(len(f.players) + 1)
	f.players = append(f.players, p)
	return p, nil
}

func (f *fakePlayerRepo) Update(ctx context.Context, p *domain.Player) (*domain.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i, existing := range f.players {
		if existing.ID == p.ID {
			f.players[i] = p
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePlayerRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.players {
		if p.ID == id {
			f.players = append(f.players[:i], f.players[i+1:]...)
			return true, nil
		}
	}
	return false, f.err
}

func (f *fakePlayerRepo) Stats(ctx context.Context) (*domain.PlayerStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	stats := f.stats
	return &stats, nil
}

type fakeAttendanceRepo struct {
	mu          sync.Mutex
	present     map[string][]*domain.Player
	entries     []domain.AttendanceEntry
	summary     domain.AttendanceSummary
	sessions    []domain.SessionSummary
	history     []domain.PlayerSessions
	trainings   int
	presence    []domain.PresenceEntry
	saved       map[string][]domain.AttendanceRecord
	recalcCalls int
	lastSince   time.Time
	lastDate    time.Time
	err         error
	saveErr     error
}

func (f *fakeAttendanceRepo) ListForDate(ctx context.Context, date time.Time) ([]domain.AttendanceEntry, error) {
	f.lastDate = date
	return f.entries, f.err
}

func (f *fakeAttendanceRepo) ListPresent(ctx context.Context, date time.Time) ([]*domain.Player, error) {
	f.lastDate = date
	return f.present[date.Format(domain.DateLayout)], f.err
}

func (f *fakeAttendanceRepo) BulkSave(ctx context.Context, date time.Time, records []domain.AttendanceRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		f.saved = make(map[string][]domain.AttendanceRecord)
	}
	f.saved[date.Format(domain.DateLayout)] = records
	return nil
}

func (f *fakeAttendanceRepo) Summary(ctx context.Context, date time.Time) (*domain.AttendanceSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := f.summary
	return &s, nil
}

func (f *fakeAttendanceRepo) RecentSessions(ctx context.Context, limit int) ([]domain.SessionSummary, error) {
	return f.sessions, f.err
}

func (f *fakeAttendanceRepo) RecalculateFrequencies(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recalcCalls++
	return nil
}

func (f *fakeAttendanceRepo) PlayerHistory(ctx context.Context, since time.Time) ([]domain.PlayerSessions, error) {
	f.lastSince = since
	return f.history, f.err
}

func (f *fakeAttendanceRepo) DistinctSessions(ctx context.Context, since time.Time) (int, error) {
	return f.trainings, f.err
}

func (f *fakeAttendanceRepo) PresenceEntries(ctx context.Context, since time.Time) ([]domain.PresenceEntry, error) {
	f.lastSince = since
	return f.presence, f.err
}

type fakeDrawRepo struct {
	mu      sync.Mutex
	records []*domain.DrawRecord
	saved   []*domain.NewDraw
	err     error
	gets    int
}

func (f *fakeDrawRepo) Create(ctx context.Context, draw *domain.NewDraw) (*domain.DrawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.saved = append(f.saved, draw)
	record := &domain.DrawRecord{
		ID:         int64(len(f.records) + 1),
		Seed:       draw.Seed,
		DrawType:   draw.DrawType,
		TeamsCount: draw.TeamsCount,
		CreatedAt:  fixedNow.Add(time.Duration(len(f.records)) * time.Second),
		Teams:      draw.Teams,
	}
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeDrawRepo) GetByID(ctx context.Context, id int64) (*domain.DrawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeDrawRepo) ListRecent(ctx context.Context, limit int) ([]*domain.DrawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.DrawRecord, 0, limit)
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

func (f *fakeDrawRepo) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}
