package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/promoplay/playgate/internal/core/domain"
)

const prizeCacheKey = "prizes:available"

// PrizeCache stores the available prize list as a single JSON value with a TTL.
// Only the read-only catalog is cached here, never participant state.
type PrizeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPrizeCache creates a PrizeCache wrapping the given Redis client.
func NewPrizeCache(client *redis.Client, ttl time.Duration) *PrizeCache {
	return &PrizeCache{client: client, ttl: ttl}
}

// Get returns the cached list. ok is false on a miss.
func (c *PrizeCache) Get(ctx context.Context) ([]domain.Prize, bool, error) {
	raw, err := c.client.Get(ctx, prizeCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("prize cache get: %w", err)
	}

	var prizes []domain.Prize
	if err := json.Unmarshal(raw, &prizes); err != nil {
		return nil, false, fmt.Errorf("prize cache decode: %w", err)
	}
	return prizes, true, nil
}

// Set replaces the cached list; it expires after the configured TTL.
func (c *PrizeCache) Set(ctx context.Context, prizes []domain.Prize) error {
	raw, err := json.Marshal(prizes)
	if err != nil {
		return fmt.Errorf("prize cache encode: %w", err)
	}
	return c.client.Set(ctx, prizeCacheKey, raw, c.ttl).Err()
}
