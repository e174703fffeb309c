package service

import (
	"context"
	"time"

	"wolves-hub/internal/domain"
	"wolves-hub/internal/repository"
	"wolves-hub/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecentSessionsLimit is the number of sessions shown on the dashboard
const RecentSessionsLimit = 5

type dashboardService struct {
	players    repository.PlayerRepository
	attendance repository.AttendanceRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewDashboardService(players repository.PlayerRepository, attendance repository.AttendanceRepository, logger *zap.Logger) DashboardService {
	return &dashboardService{players: players, attendance: attendance, logger: logger, now: time.Now}
}

// Get loads the three dashboard sections concurrently
func (s *dashboardService) Get(ctx context.Context) (*domain.Dashboard, error) {
	day := today(s.now)

	var (
		playerStats *domain.PlayerStats
		summary     *domain.AttendanceSummary
		sessions    []domain.SessionSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		playerStats, err = s.players.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = s.attendance.Summary(gctx, day)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = s.attendance.RecentSessions(gctx, RecentSessionsLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, errors.NewInternalError("Failed to load dashboard", err)
	}

	if sessions == nil {
		sessions = []domain.SessionSummary{}
	}

	return &domain.Dashboard{
		Players: *playerStats,
		AttendanceToday: domain.TodayAttendance{
			Date:              day.Format(domain.DateLayout),
			AttendanceSummary: *summary,
		},
		RecentSessions: sessions,
	}, nil
}
