package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"wolves-hub/internal/domain"
	"wolves-hub/pkg/redis"

	"go.uber.org/zap"
)

// CacheService provides cache-aside helpers over Redis. Cache failures are
// logged and never fail the caller.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// GetDrawWithCache retrieves a stored draw, reading through to dbFallback on a miss
func (c *CacheService) GetDrawWithCache(ctx context.Context, id int64, dbFallback func(ctx context.Context, id int64) (*domain.DrawRecord, error)) (*domain.DrawRecord, error) {
	cacheKey := c.redis.KeyBuilder.KeyDrawByID(id)

	cachedData, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cachedData != "" {
		var record domain.DrawRecord
		if unmarshalErr := json.Unmarshal([]byte(cachedData), &record); unmarshalErr == nil {
			c.logger.Debug("Draw cache hit", zap.Int64("draw_id", id))
			return &record, nil
		} else {
			c.logger.Warn("Draw cache corrupted, falling back to database",
				zap.Int64("draw_id", id),
				zap.Error(unmarshalErr))
		}
	} else if err != nil && err != redis.Nil {
		c.logger.Warn("Draw cache error, falling back to database",
			zap.Int64("draw_id", id),
			zap.Error(err))
	}

	c.logger.Debug("Draw cache miss", zap.Int64("draw_id", id))
	record, err := dbFallback(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("database fallback failed: %w", err)
	}

	if record != nil {
		go c.CacheDraw(record)
	}

	return record, nil
}

// GetRecentDrawsWithCache retrieves the latest draws page for limit.
// Pages are keyed by the invalidation generation read before the database,
// so a page loaded before a new draw is saved lands under a key no later
// read uses.
func (c *CacheService) GetRecentDrawsWithCache(ctx context.Context, limit int, dbFallback func(ctx context.Context, limit int) ([]*domain.DrawRecord, error)) ([]*domain.DrawRecord, error) {
	generation, err := c.recentDrawsGeneration(ctx)
	if err != nil {
		c.logger.Warn("Recent draws generation unavailable, reading database",
			zap.Int("limit", limit),
			zap.Error(err))
		records, err := dbFallback(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("database fallback failed: %w", err)
		}
		return records, nil
	}
	cacheKey := c.redis.KeyBuilder.KeyDrawsRecent(generation, limit)

	cachedData, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cachedData != "" {
		var records []*domain.DrawRecord
		if unmarshalErr := json.Unmarshal([]byte(cachedData), &records); unmarshalErr == nil {
			c.logger.Debug("Recent draws cache hit", zap.Int("limit", limit))
			return records, nil
		} else {
			c.logger.Warn("Recent draws cache corrupted, falling back to database",
				zap.Int("limit", limit),
				zap.Error(unmarshalErr))
		}
	} else if err != nil && err != redis.Nil {
		c.logger.Warn("Recent draws cache error, falling back to database",
			zap.Int("limit", limit),
			zap.Error(err))
	}

	records, err := dbFallback(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("database fallback failed: %w", err)
	}

	go c.setJSON(cacheKey, records, redis.TTLDrawsRecent)

	return records, nil
}

// CacheDraw stores a draw under its id. Stored draws never change, so the
// entry is only ever dropped by its TTL.
func (c *CacheService) CacheDraw(record *domain.DrawRecord) {
	c.setJSON(c.redis.KeyBuilder.KeyDrawByID(record.ID), record, redis.TTLDrawByID)
}

// InvalidateRecentDraws moves recent-draws reads to a new generation and
// drops the pages cached so far
func (c *CacheService) InvalidateRecentDraws(ctx context.Context) {
	if _, err := c.redis.Incr(ctx, c.redis.KeyBuilder.KeyDrawsGeneration()); err != nil {
		c.logger.Error("Failed to bump recent draws generation", zap.Error(err))
	}
	if err := c.redis.InvalidatePattern(ctx, c.redis.KeyBuilder.KeyDrawsRecentPattern()); err != nil {
		c.logger.Error("Failed to invalidate recent draws cache", zap.Error(err))
	}
}

func (c *CacheService) recentDrawsGeneration(ctx context.Context) (int64, error) {
	val, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeyDrawsGeneration())
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	generation, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid recent draws generation: %w", err)
	}
	return generation, nil
}

// TryIdempotencyLock attempts to acquire an idempotency lock for the given key.
// Returns true if acquired (first time), false if the key already exists (duplicate within TTL).
func (c *CacheService) TryIdempotencyLock(ctx context.Context, key string) (bool, error) {
	return c.redis.SetNX(ctx, c.redis.KeyBuilder.KeyDrawIdempotency(key), "1", redis.TTLDrawIdempotency)
}

// ReleaseIdempotencyLock frees key so the client may retry
func (c *CacheService) ReleaseIdempotencyLock(ctx context.Context, key string) {
	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyDrawIdempotency(key)); err != nil {
		c.logger.Warn("Failed to release idempotency lock", zap.Error(err))
	}
}

// FailedLogins returns the failed login count of email in the current window
func (c *CacheService) FailedLogins(ctx context.Context, email string) (int64, error) {
	val, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeyLoginAttempts(email))
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var n int64
	if _, err := fmt.Sscan(val, &n); err != nil {
		return 0, fmt.Errorf("invalid login attempts counter: %w", err)
	}
	return n, nil
}

// RegisterFailedLogin counts a failed login of email
func (c *CacheService) RegisterFailedLogin(ctx context.Context, email string) (int64, error) {
	return c.redis.IncrWithTTL(ctx, c.redis.KeyBuilder.KeyLoginAttempts(email), redis.TTLLoginAttempts)
}

// ResetFailedLogins clears the failed login counter of email
func (c *CacheService) ResetFailedLogins(ctx context.Context, email string) {
	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyLoginAttempts(email)); err != nil {
		c.logger.Warn("Failed to reset login attempts", zap.Error(err))
	}
}

// HealthCheck performs a health check on the cache system
func (c *CacheService) HealthCheck(ctx context.Context) error {
	start := time.Now()
	err := c.redis.Health(ctx)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Cache health check failed",
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Cache health check passed", zap.Duration("duration", duration))
	return nil
}

// setJSON caches value with its own timeout so it can run detached from the request
func (c *CacheService) setJSON(key string, value interface{}, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("Failed to marshal value for caching", zap.Error(err))
		return
	}

	if err := c.redis.Set(ctx, key, string(data), ttl); err != nil {
		c.logger.Error("Failed to cache value", zap.Error(err))
	}
}
