package service

import (
	"context"
	"time"

	"wolves-hub/internal/domain"
	"wolves-hub/internal/repository"
	"wolves-hub/pkg/errors"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

// History window bounds in days
const (
	DefaultHistoryDays = 30
	MinHistoryDays     = 7
	MaxHistoryDays     = 365
)

type historyService struct {
	attendance repository.AttendanceRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewHistoryService(attendance repository.AttendanceRepository, logger *zap.Logger) HistoryService {
	return &historyService{attendance: attendance, logger: logger, now: time.Now}
}

// ClampDays maps a requested window to the supported range. Non-positive
// values select the default window.
func ClampDays(days int) int {
	if days <= 0 {
		return DefaultHistoryDays
	}
	return min(max(days, MinHistoryDays), MaxHistoryDays)
}

// windowStart returns the first day of a window of days ending today
func (s *historyService) windowStart(days int) time.Time {
	return today(s.now).AddDate(0, 0, -(days - 1))
}

func (s *historyService) Report(ctx context.Context, days int) (*domain.HistoryReport, error) {
	days = ClampDays(days)
	start := s.windowStart(days)

	history, err := s.attendance.PlayerHistory(ctx, start)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load history", err)
	}

	trainings, err := s.attendance.DistinctSessions(ctx, start)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load history", err)
	}

	report := buildHistoryReport(history)
	report.Trainings = trainings
	report.Days = days
	report.StartDate = start.Format(domain.DateLayout)
	return report, nil
}

// buildHistoryReport computes per-player percentages and the aggregates over
// players that had at least one session in the window
func buildHistoryReport(history []domain.PlayerSessions) *domain.HistoryReport {
	report := &domain.HistoryReport{PerPlayer: make([]domain.PlayerFrequency, 0, len(history))}

	var withSessions stats.Float64Data
	for _, h := range history {
		pf := domain.PlayerFrequency{
			PlayerID:   h.PlayerID,
			Name:       h.Name,
			Status:     h.Status,
			Sessions:   h.TotalSessions,
			Present:    h.PresentSessions,
			Percentage: domain.Percentage(h.PresentSessions, h.TotalSessions),
		}
		report.PerPlayer = append(report.PerPlayer, pf)

		if pf.Sessions == 0 {
			continue
		}
		withSessions = append(withSessions, float64(pf.Percentage))
		if pf.Percentage >= 90 {
			report.Above90++
		}
		if pf.Percentage < domain.HighFrequencyThreshold {
			report.Below80++
		}
	}

	if len(withSessions) > 0 {
		mean, err := withSessions.Mean()
		if err == nil {
			rounded, _ := stats.Round(mean, 0)
			report.AverageFrequency = int(rounded)
		}
	}
	return report
}

func (s *historyService) Entries(ctx context.Context, days int) (*domain.PresenceReport, error) {
	days = ClampDays(days)
	start := s.windowStart(days)

	entries, err := s.attendance.PresenceEntries(ctx, start)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load presence entries", err)
	}

	return &domain.PresenceReport{
		Days:      days,
		StartDate: start.Format(domain.DateLayout),
		Entries:   entries,
	}, nil
}
