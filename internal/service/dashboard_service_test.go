package service

import (
	"context"
	stderrors "errors"
	"testing"

	"wolves-hub/internal/domain"
	"wolves-hub/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardService_Get(t *testing.T) {
	players := &fakePlayerRepo{stats: domain.PlayerStats{Total: 4, Active: 3, HighFrequency: 2}}
	attendance := &fakeAttendanceRepo{
		summary:  domain.AttendanceSummary{Present: 3, Total: 3, Percentage: 100},
		sessions: []domain.SessionSummary{{TrainingDate: "2024-04-30", Present: 3, Total: 4}},
	}
	svc := NewDashboardService(players, attendance, zap.NewNop()).(*dashboardService)
	svc.now = fixedClock

	dashboard, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, dashboard.Players.Active)
	assert.Equal(t, "2024-05-01", dashboard.AttendanceToday.Date)
	assert.Equal(t, 100, dashboard.AttendanceToday.Percentage)
	assert.Len(t, dashboard.RecentSessions, 1)
}

func TestDashboardService_Get_NoSessions(t *testing.T) {
	svc := NewDashboardService(&fakePlayerRepo{}, &fakeAttendanceRepo{}, zap.NewNop())

	dashboard, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, dashboard.RecentSessions)
	assert.Empty(t, dashboard.RecentSessions)
}

func TestDashboardService_Get_Error(t *testing.T) {
	players := &fakePlayerRepo{err: stderrors.New("connection reset")}
	svc := NewDashboardService(players, &fakeAttendanceRepo{}, zap.NewNop())

	_, err := svc.Get(context.Background())
	assertAppError(t, err, errors.ErrorTypeInternal)
}
