package container

import (
	"context"
	"fmt"

	"wolves-hub/internal/config"
	"wolves-hub/internal/repository"
	"wolves-hub/internal/service"
	"wolves-hub/internal/service/auth"
	"wolves-hub/pkg/database"
	"wolves-hub/pkg/logger"
	"wolves-hub/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           *database.PostgresDB
	RedisClient  *redis.Client
	Repositories *repository.Repositories
	Services     *service.Services
	cache        *service.CacheService
}

// New connects to PostgreSQL and, when configured, Redis, then wires the
// repositories and services on top of them
func New(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*Container, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is not configured")
	}

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Database connection pool initialized successfully")

	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Named("redis").Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without caching")
	}

	repos := &repository.Repositories{
		Player:     repository.NewPlayerRepository(db),
		Attendance: repository.NewAttendanceRepository(db),
		Draw:       repository.NewDrawRepository(db),
		User:       repository.NewUserRepository(db),
	}

	c := NewWithRepositories(cfg, logger, repos, redisClient)
	c.DB = db
	return c, nil
}

// NewWithRepositories wires the services over already built repositories.
// redisClient may be nil.
func NewWithRepositories(cfg *config.Config, logger *logger.Logger, repos *repository.Repositories, redisClient *redis.Client) *Container {
	var cache *service.CacheService
	if redisClient != nil {
		cache = service.NewCacheService(redisClient, logger.Named("cache").Logger)
	}

	services := &service.Services{
		Auth:       auth.NewService(repos.User, cache, cfg.JWTSecret, cfg.JWTExpiresIn, logger.Named("auth")),
		Player:     service.NewPlayerService(repos.Player, repos.Attendance, logger.Named("players").Logger),
		Attendance: service.NewAttendanceService(repos.Attendance, logger.Named("attendance").Logger),
		History:    service.NewHistoryService(repos.Attendance, logger.Named("history").Logger),
		Dashboard:  service.NewDashboardService(repos.Player, repos.Attendance, logger.Named("dashboard").Logger),
		Draw:       service.NewDrawService(repos.Draw, repos.Player, repos.Attendance, cache, logger.Named("draws").Logger),
	}

	return &Container{
		Config:       cfg,
		Logger:       logger,
		RedisClient:  redisClient,
		Repositories: repos,
		Services:     services,
		cache:        cache,
	}
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.Services.Auth
}

func (c *Container) GetPlayerService() service.PlayerService {
	return c.Services.Player
}

func (c *Container) GetAttendanceService() service.AttendanceService {
	return c.Services.Attendance
}

func (c *Container) GetHistoryService() service.HistoryService {
	return c.Services.History
}

func (c *Container) GetDashboardService() service.DashboardService {
	return c.Services.Dashboard
}

func (c *Container) GetDrawService() service.DrawService {
	return c.Services.Draw
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// GetCacheService returns the cache service (nil if Redis is not available)
func (c *Container) GetCacheService() *service.CacheService {
	return c.cache
}
