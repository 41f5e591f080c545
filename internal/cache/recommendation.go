// internal/cache/recommendation.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career-workers/internal/recommendation"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "career:rec:"

// RecommendationCache stores labels keyed by strategy and profile fingerprint.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a cache writing entries with the given TTL. A nil client or a
// non-positive TTL yields a disabled cache whose lookups always miss.
func New(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{client: client, ttl: ttl}
}

func (c *RecommendationCache) Enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

func Key(strategy string, profile recommendation.Profile) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, strategy, profile.Fingerprint())
}

// Get returns the cached label and whether it was found.
func (c *RecommendationCache) Get(ctx context.Context, strategy string, profile recommendation.Profile) (recommendation.Label, bool, error) {
	if !c.Enabled() {
		return "", false, nil
	}
	val, err := c.client.Get(ctx, Key(strategy, profile)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return recommendation.Label(val), true, nil
}

func (c *RecommendationCache) Set(ctx context.Context, strategy string, profile recommendation.Profile, label recommendation.Label) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Set(ctx, Key(strategy, profile), string(label), c.ttl).Err()
}
