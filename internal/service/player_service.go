package service

import (
	"context"
	stderrors "errors"

	"wolves-hub/internal/domain"
	"wolves-hub/internal/repository"
	"wolves-hub/pkg/errors"
	"wolves-hub/pkg/utils"
	"wolves-hub/pkg/validation"

	"go.uber.org/zap"
)

type playerService struct {
	players    repository.PlayerRepository
	attendance repository.AttendanceRepository
	logger     *zap.Logger
}

func NewPlayerService(players repository.PlayerRepository, attendance repository.AttendanceRepository, logger *zap.Logger) PlayerService {
	return &playerService{players: players, attendance: attendance, logger: logger}
}

// List refreshes frequencies before reading so the roster reflects the
// latest attendance
func (s *playerService) List(ctx context.Context) ([]*domain.Player, error) {
	if err := s.attendance.RecalculateFrequencies(ctx); err != nil {
		s.logger.Warn("Failed to refresh player frequencies", zap.Error(err))
	}

	players, err := s.players.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list players", err)
	}
	return players, nil
}

func (s *playerService) Get(ctx context.Context, id int64) (*domain.Player, error) {
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load player", err)
	}
	if player == nil {
		return nil, errors.NewNotFoundError("Player not found")
	}
	return player, nil
}

func (s *playerService) Create(ctx context.Context, in *domain.PlayerInput) (*domain.Player, error) {
	if appErr := validation.Struct(in); appErr != nil {
		return nil, appErr
	}
	if appErr := canonicalPhone(in.Phone); appErr != nil {
		return nil, appErr
	}

	player, err := s.players.Create(ctx, in.NewPlayer())
	if stderrors.Is(err, repository.ErrDuplicateEmail) {
		return nil, errors.NewConflictError("Email already registered")
	}
	if err != nil {
		return nil, errors.NewInternalError("Failed to create player", err)
	}

	s.logger.Info("Player created", zap.Int64("player_id", player.ID))
	return player, nil
}

func (s *playerService) Update(ctx context.Context, id int64, update *domain.PlayerUpdate) (*domain.Player, error) {
	if appErr := validation.Struct(update); appErr != nil {
		return nil, appErr
	}
	if appErr := canonicalPhone(update.Phone); appErr != nil {
		return nil, appErr
	}

	player, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(player)

	updated, err := s.players.Update(ctx, player)
	if stderrors.Is(err, repository.ErrDuplicateEmail) {
		return nil, errors.NewConflictError("Email already registered")
	}
	if err != nil {
		return nil, errors.NewInternalError("Failed to update player", err)
	}
	if updated == nil {
		return nil, errors.NewNotFoundError("Player not found")
	}
	return updated, nil
}

func (s *playerService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.players.SoftDelete(ctx, id)
	if err != nil {
		return errors.NewInternalError("Failed to delete player", err)
	}
	if !deleted {
		return errors.NewNotFoundError("Player not found")
	}

	s.logger.Info("Player deleted", zap.Int64("player_id", id))
	return nil
}

// canonicalPhone rewrites a non-empty phone in place to its display format
func canonicalPhone(phone *string) *errors.AppError {
	if phone == nil || *phone == "" {
		return nil
	}
	formatted, err := utils.CanonicalPhone(*phone)
	if err != nil {
		return errors.NewValidationError("Validation failed", map[string]interface{}{
			"phone": "must be a valid phone number with area code",
		})
	}
	*phone = formatted
	return nil
}
