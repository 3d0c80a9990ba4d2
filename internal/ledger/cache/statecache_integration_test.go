//go:build integration

package cache_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"remit/internal/ledger/cache"
	"remit/internal/ledger/models"
	"remit/pkg/testutil/containers"
)

type StateCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.StateCache
	ctx   context.Context
}

func TestStateCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StateCacheSuite))
}

func (s *StateCacheSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.cache = cache.NewStateCache(s.redis.Client, time.Minute, logger)
}

func (s *StateCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *StateCacheSuite) TestSetGetRoundTrip() {
	aggregateID := uuid.New()
	changedAt := time.Now().UTC().Truncate(time.Millisecond)

	_, _, ok := s.cache.Get(s.ctx, models.KindPayment, aggregateID)
	s.False(ok, "cold cache must miss")

	s.cache.Set(s.ctx, models.KindPayment, aggregateID, models.StateValidated, changedAt)

	state, got, ok := s.cache.Get(s.ctx, models.KindPayment, aggregateID)
	s.Require().True(ok)
	s.Equal(models.StateValidated, state)
	s.True(changedAt.Equal(got))
}

func (s *StateCacheSuite) TestKindsDoNotCollide() {
	aggregateID := uuid.New()
	now := time.Now().UTC()

	s.cache.Set(s.ctx, models.KindPayment, aggregateID, models.StateValidated, now)

	_, _, ok := s.cache.Get(s.ctx, models.KindMessage, aggregateID)
	s.False(ok, "message entry must not shadow payment entry")
}

func (s *StateCacheSuite) TestInvalidate() {
	aggregateID := uuid.New()
	now := time.Now().UTC()

	s.cache.Set(s.ctx, models.KindPayment, aggregateID, models.StateValidated, now)
	s.cache.Invalidate(s.ctx, models.KindPayment, aggregateID)

	_, _, ok := s.cache.Get(s.ctx, models.KindPayment, aggregateID)
	s.False(ok, "invalidated entry must miss")
}

// TestStaleRecacheExpiresWithinTTL pins the documented staleness bound: a
// late reader that re-caches an old state after an invalidation wins the
// race, but the stale entry can only live for the TTL.
func (s *StateCacheSuite) TestStaleRecacheExpiresWithinTTL() {
	short := cache.NewStateCache(s.redis.Client, 50*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	aggregateID := uuid.New()
	now := time.Now().UTC()

	// A transition commits and invalidates, then a reader holding the state
	// from before the transition re-caches it.
	short.Set(s.ctx, models.KindPayment, aggregateID, models.StateReceived, now)
	short.Invalidate(s.ctx, models.KindPayment, aggregateID)
	short.Set(s.ctx, models.KindPayment, aggregateID, models.StateReceived, now)

	state, _, ok := short.Get(s.ctx, models.KindPayment, aggregateID)
	s.Require().True(ok)
	s.Equal(models.StateReceived, state, "the stale re-cache is visible until the TTL")

	time.Sleep(100 * time.Millisecond)

	_, _, ok = short.Get(s.ctx, models.KindPayment, aggregateID)
	s.False(ok, "stale entry must not outlive the TTL")
}

func (s *StateCacheSuite) TestTTLExpiry() {
	short := cache.NewStateCache(s.redis.Client, 50*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	aggregateID := uuid.New()

	short.Set(s.ctx, models.KindPayment, aggregateID, models.StateRouted, time.Now().UTC())
	_, _, ok := short.Get(s.ctx, models.KindPayment, aggregateID)
	s.Require().True(ok)

	time.Sleep(100 * time.Millisecond)

	_, _, ok = short.Get(s.ctx, models.KindPayment, aggregateID)
	s.False(ok, "entry must expire after the TTL")
}
