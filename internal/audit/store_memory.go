package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// InMemoryStore is the outbox used in dev mode and tests. Rows live in a
// slice in append order.
type InMemoryStore struct {
	mu      sync.Mutex
	pending []Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, Record{
		ID:        event.ID,
		Key:       event.AggregateID.String(),
		Payload:   payload,
		CreatedAt: event.OccurredAt,
	})
	return nil
}

func (s *InMemoryStore) FetchUnpublished(ctx context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := min(limit, len(s.pending))
	out := make([]Record, n)
	copy(out, s.pending[:n])
	return out, nil
}

func (s *InMemoryStore) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	published := make(map[uuid.UUID]struct{}, len(ids))
	for _, recordID := range ids {
		published[recordID] = struct{}{}
	}
	remaining := s.pending[:0]
	for _, rec := range s.pending {
		if _, ok := published[rec.ID]; !ok {
			remaining = append(remaining, rec)
		}
	}
	s.pending = remaining
	return nil
}
