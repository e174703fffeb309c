package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"wolves-hub/internal/domain"
	"wolves-hub/internal/repository"
	"wolves-hub/pkg/errors"
	"wolves-hub/pkg/teamdraw"
	"wolves-hub/pkg/validation"

	"go.uber.org/zap"
)

var (
	// ErrNoCandidates is returned when nobody is available to be drawn
	ErrNoCandidates = stderrors.New("no players available for the draw")

	// ErrDrawNotSaved wraps store failures that happen after a draw was computed
	ErrDrawNotSaved = stderrors.New("could not save draw")
)

type drawService struct {
	draws      repository.DrawRepository
	players    repository.PlayerRepository
	attendance repository.AttendanceRepository
	cache      *CacheService
	logger     *zap.Logger
	now        func() time.Time
}

// NewDrawService creates the team draw service. cache may be nil.
func NewDrawService(
	draws repository.DrawRepository,
	players repository.PlayerRepository,
	attendance repository.AttendanceRepository,
	cache *CacheService,
	logger *zap.Logger,
) DrawService {
	return &drawService{
		draws:      draws,
		players:    players,
		attendance: attendance,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *drawService) Create(ctx context.Context, req *domain.DrawRequest, idempotencyKey string) (*domain.DrawRecord, error) {
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	seed, err := s.resolveSeed(req.Seed)
	if err != nil {
		return nil, err
	}

	var drawDate *time.Time
	if req.Date != nil {
		day, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		drawDate = &day
	}

	if idempotencyKey != "" && s.cache != nil {
		acquired, err := s.cache.TryIdempotencyLock(ctx, idempotencyKey)
		if err != nil {
			s.logger.Warn("Idempotency check failed, continuing without it", zap.Error(err))
		} else if !acquired {
			return nil, errors.NewConflictError("This draw was already submitted")
		}
	}

	record, err := s.run(ctx, req, seed, drawDate)
	if err != nil {
		if idempotencyKey != "" && s.cache != nil {
			s.cache.ReleaseIdempotencyLock(ctx, idempotencyKey)
		}
		return nil, err
	}

	if s.cache != nil {
		go s.cache.CacheDraw(record)
		s.cache.InvalidateRecentDraws(ctx)
	}

	s.logger.Info("Team draw created",
		zap.Int64("draw_id", record.ID),
		zap.String("seed", record.Seed),
		zap.String("draw_type", string(record.DrawType)),
		zap.Int("teams_count", record.TeamsCount))

	return record, nil
}

func (s *drawService) run(ctx context.Context, req *domain.DrawRequest, seed string, drawDate *time.Time) (*domain.DrawRecord, error) {
	candidates, err := s.candidates(ctx, drawDate, req.Guests)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		appErr := errors.NewValidationError("No players available for the draw", nil)
		appErr.Internal = ErrNoCandidates
		return nil, appErr
	}

	teams := teamdraw.Partition(candidates, req.TeamsCount, req.DrawType, seed)

	record, err := s.draws.Create(ctx, &domain.NewDraw{
		Seed:       seed,
		DrawType:   req.DrawType,
		TeamsCount: req.TeamsCount,
		Teams:      domain.NewDrawTeams(teams),
	})
	if err != nil {
		s.logger.Error("Failed to persist team draw",
			zap.String("seed", seed),
			zap.Error(err))
		return nil, errors.NewPersistenceError("Could not save draw", fmt.Errorf("%w: %w", ErrDrawNotSaved, err))
	}
	return record, nil
}

// candidates lists the roster taking part in a draw: the active players, or
// only those present on drawDate, followed by the guests in request order
func (s *drawService) candidates(ctx context.Context, drawDate *time.Time, guests []domain.DrawGuest) ([]teamdraw.Candidate, error) {
	var (
		players []*domain.Player
		err     error
	)
	if drawDate != nil {
		players, err = s.attendance.ListPresent(ctx, *drawDate)
	} else {
		players, err = s.players.ListActive(ctx)
	}
	if err != nil {
		return nil, errors.NewInternalError("Failed to load players", err)
	}

	out := make([]teamdraw.Candidate, 0, len(players)+len(guests))
	for _, p := range players {
		out = append(out, p.Candidate())
	}
	for _, g := range guests {
		out = append(out, g.Candidate())
	}
	return out, nil
}

// resolveSeed trims a supplied seed or derives one from the current time in
// base 36 milliseconds
func (s *drawService) resolveSeed(seed *string) (string, error) {
	if seed == nil {
		return strconv.FormatInt(s.now().UnixMilli(), 36), nil
	}

	trimmed := strings.TrimSpace(*seed)
	length := len(utf16.Encode([]rune(trimmed)))
	if length < 1 || length > domain.MaxSeedLength {
		return "", errors.NewValidationError("Invalid data", map[string]interface{}{
			"seed": fmt.Sprintf("must have between 1 and %d characters", domain.MaxSeedLength),
		})
	}
	return trimmed, nil
}

func (s *drawService) Get(ctx context.Context, id int64) (*domain.DrawRecord, error) {
	var (
		record *domain.DrawRecord
		err    error
	)
	if s.cache != nil {
		record, err = s.cache.GetDrawWithCache(ctx, id, s.draws.GetByID)
	} else {
		record, err = s.draws.GetByID(ctx, id)
	}
	if err != nil {
		return nil, errors.NewInternalError("Failed to load draw", err)
	}
	if record == nil {
		return nil, errors.NewNotFoundError("Draw not found")
	}
	return record, nil
}

func (s *drawService) ListRecent(ctx context.Context, limit int) (*domain.DrawList, error) {
	if limit < 1 || limit > domain.MaxDrawLimit {
		return nil, errors.NewValidationError("Invalid parameters", map[string]interface{}{
			"limit": fmt.Sprintf("must be between 1 and %d", domain.MaxDrawLimit),
		})
	}

	var (
		records []*domain.DrawRecord
		err     error
	)
	if s.cache != nil {
		records, err = s.cache.GetRecentDrawsWithCache(ctx, limit, s.draws.ListRecent)
	} else {
		records, err = s.draws.ListRecent(ctx, limit)
	}
	if err != nil {
		return nil, errors.NewInternalError("Failed to list draws", err)
	}
	if records == nil {
		records = []*domain.DrawRecord{}
	}
	return &domain.DrawList{Items: records}, nil
}
