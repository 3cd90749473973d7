package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus102/AGROVIE-sub002/internal/models"
)

func newTestRuleCache(t *testing.T) (*RedisRuleCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisRuleCache(client, time.Minute), mr
}

func TestRedisRuleCache_SetAndGet(t *testing.T) {
	cache, _ := newTestRuleCache(t)
	ctx := context.Background()

	criteria := models.PricingCriteria{
		ActorRole:       models.ActorRoleWorker,
		Specialization:  models.SpecializationCropProduction,
		ExperienceLevel: models.ExperienceLevelExpert,
		SurfaceUnit:     models.SurfaceUnitHectares,
	}
	rule := testRule()

	cache.Set(ctx, criteria, rule)

	got, ok := cache.Get(ctx, criteria)
	require.True(t, ok)
	assert.Equal(t, rule.SpecializationBasePrice, got.SpecializationBasePrice)
	assert.Equal(t, rule.ExperienceMultiplier, got.ExperienceMultiplier)
}

func TestRedisRuleCache_MissOnDifferentCriteria(t *testing.T) {
	cache, _ := newTestRuleCache(t)
	ctx := context.Background()

	criteria := models.PricingCriteria{ActorRole: models.ActorRoleWorker}
	cache.Set(ctx, criteria, testRule())

	other := criteria
	other.ExperienceLevel = models.ExperienceLevelExpert
	_, ok := cache.Get(ctx, other)
	assert.False(t, ok)
}

func TestRedisRuleCache_ExpiresAfterTTL(t *testing.T) {
	cache, mr := newTestRuleCache(t)
	ctx := context.Background()

	criteria := models.PricingCriteria{ActorRole: models.ActorRoleWorker}
	cache.Set(ctx, criteria, testRule())

	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, criteria)
	assert.False(t, ok)
}

func TestRedisRuleCache_CorruptEntryIgnored(t *testing.T) {
	cache, mr := newTestRuleCache(t)
	ctx := context.Background()

	criteria := models.PricingCriteria{ActorRole: models.ActorRoleWorker}
	require.NoError(t, mr.Set(cacheKey(criteria), "not json"))

	_, ok := cache.Get(ctx, criteria)
	assert.False(t, ok)
}

func TestRedisRuleCache_DegradesWhenRedisDown(t *testing.T) {
	cache, mr := newTestRuleCache(t)
	ctx := context.Background()

	mr.Close()

	criteria := models.PricingCriteria{ActorRole: models.ActorRoleWorker}
	cache.Set(ctx, criteria, testRule())
	_, ok := cache.Get(ctx, criteria)
	assert.False(t, ok)
}
