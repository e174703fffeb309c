package service

import (
	"context"
	stderrors "errors"
	"time"

	"wolves-hub/internal/domain"
	"wolves-hub/internal/repository"
	"wolves-hub/pkg/errors"
	"wolves-hub/pkg/validation"

	"go.uber.org/zap"
)

type attendanceService struct {
	attendance repository.AttendanceRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewAttendanceService(attendance repository.AttendanceRepository, logger *zap.Logger) AttendanceService {
	return &attendanceService{attendance: attendance, logger: logger, now: time.Now}
}

func (s *attendanceService) Sheet(ctx context.Context, date string) (*domain.AttendanceSheet, error) {
	day := today(s.now)
	if date != "" {
		parsed, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		day = parsed
	}

	if err := s.attendance.RecalculateFrequencies(ctx); err != nil {
		s.logger.Warn("Failed to refresh player frequencies", zap.Error(err))
	}

	entries, err := s.attendance.ListForDate(ctx, day)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load attendance", err)
	}

	summary, err := s.attendance.Summary(ctx, day)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load attendance summary", err)
	}

	return &domain.AttendanceSheet{
		Date:       day.Format(domain.DateLayout),
		Summary:    *summary,
		Attendance: entries,
	}, nil
}

func (s *attendanceService) Save(ctx context.Context, date string, req *domain.AttendanceUpdateRequest) (*domain.AttendanceSummary, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	err = s.attendance.BulkSave(ctx, day, req.Records)
	if stderrors.Is(err, repository.ErrUnknownPlayer) {
		return nil, errors.NewValidationError("Invalid data", map[string]interface{}{
			"records": "references a player that does not exist",
		})
	}
	if err != nil {
		return nil, errors.NewInternalError("Failed to save attendance", err)
	}

	if err := s.attendance.RecalculateFrequencies(ctx); err != nil {
		s.logger.Warn("Failed to refresh player frequencies", zap.Error(err))
	}

	summary, err := s.attendance.Summary(ctx, day)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load attendance summary", err)
	}

	s.logger.Info("Attendance saved",
		zap.String("date", date),
		zap.Int("records", len(req.Records)))
	return summary, nil
}
