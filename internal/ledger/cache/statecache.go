// Package cache provides the Redis-backed read-through cache for aggregate
// state. It is strictly an accelerator: every miss or Redis failure falls
// back to the store, and entries are invalidated on every applied transition.
//
// The TTL is the staleness bound, not a tuning knob. A reader that loaded a
// projection before a transition commits can re-cache it after the
// invalidation, so a stale entry may survive an Invalidate; it is only ever
// served for at most the TTL before the store becomes authoritative again.
// Deployments pick the TTL by how stale a state read is allowed to be.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"remit/internal/ledger/models"
)

const stateKeyPrefix = "ledger:state:"

type cachedState struct {
	State     models.State `json:"state"`
	ChangedAt time.Time    `json:"changed_at"`
}

// StateCache stores aggregate projections in Redis with a TTL.
type StateCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewStateCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *StateCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateCache{client: client, ttl: ttl, logger: logger}
}

func stateKey(kind models.AggregateKind, aggregateID uuid.UUID) string {
	return stateKeyPrefix + string(kind) + ":" + aggregateID.String()
}

// Get returns the cached state, or ok=false on miss or any Redis failure.
func (c *StateCache) Get(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) (models.State, time.Time, bool) {
	raw, err := c.client.Get(ctx, stateKey(kind, aggregateID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", time.Time{}, false
	}
	if err != nil {
		c.logger.DebugContext(ctx, "state cache read failed", "error", err)
		return "", time.Time{}, false
	}
	var entry cachedState
	if err := json.Unmarshal(raw, &entry); err != nil {
		return "", time.Time{}, false
	}
	return entry.State, entry.ChangedAt, true
}

// Set stores the state with the configured TTL. Failures are logged and
// swallowed; the store remains authoritative.
func (c *StateCache) Set(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID, state models.State, changedAt time.Time) {
	raw, err := json.Marshal(cachedState{State: state, ChangedAt: changedAt})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, stateKey(kind, aggregateID), raw, c.ttl).Err(); err != nil {
		c.logger.DebugContext(ctx, "state cache write failed", "error", err)
	}
}

// Invalidate drops the entry after an applied transition.
func (c *StateCache) Invalidate(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) {
	if err := c.client.Del(ctx, stateKey(kind, aggregateID)).Err(); err != nil {
		c.logger.DebugContext(ctx, "state cache invalidation failed", "error", err)
	}
}
