package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcus102/AGROVIE-sub002/internal/logger"
	"github.com/marcus102/AGROVIE-sub002/internal/models"
)

// RedisRuleCache caches pricing rules in Redis with a TTL. Cache failures
// are logged and degrade to repository reads; they never fail a request.
type RedisRuleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRuleCache creates a Redis-backed rule cache.
func NewRedisRuleCache(client *redis.Client, ttl time.Duration) *RedisRuleCache {
	return &RedisRuleCache{client: client, ttl: ttl}
}

func cacheKey(c models.PricingCriteria) string {
	return fmt.Sprintf("pricing_rule:%s:%s:%s:%s", c.ActorRole, c.Specialization, c.ExperienceLevel, c.SurfaceUnit)
}

// Get returns a cached rule, if any.
func (c *RedisRuleCache) Get(ctx context.Context, criteria models.PricingCriteria) (*models.PricingRule, bool) {
	raw, err := c.client.Get(ctx, cacheKey(criteria)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.WithError(err).Warn("pricing cache read failed")
		}
		return nil, false
	}

	var rule models.PricingRule
	if err := json.Unmarshal([]byte(raw), &rule); err != nil {
		logger.Log.WithError(err).Warn("pricing cache entry corrupt, ignoring")
		return nil, false
	}
	return &rule, true
}

// Set stores a rule under the criteria key.
func (c *RedisRuleCache) Set(ctx context.Context, criteria models.PricingCriteria, rule *models.PricingRule) {
	raw, err := json.Marshal(rule)
	if err != nil {
		logger.Log.WithError(err).Warn("pricing cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, cacheKey(criteria), raw, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).Warn("pricing cache write failed")
	}
}
