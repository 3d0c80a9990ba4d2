package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Publisher captures lifecycle audit events. It is append-only and uses the
// outbox store for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	return p.store.Append(ctx, event)
}
