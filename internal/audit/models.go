package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"remit/internal/ledger/models"
)

// Event mirrors one committed lifecycle change for downstream consumers
// (compliance, analytics, reconciliation). It is written to the outbox in the
// same unit of work as the transition itself, so the stream never diverges
// from the ledger.
type Event struct {
	ID            uuid.UUID            `json:"id"`
	AggregateKind models.AggregateKind `json:"aggregate_kind"`
	AggregateID   uuid.UUID            `json:"aggregate_id"`
	SeqNo         int64                `json:"seq_no"`
	FromState     models.State         `json:"from_state,omitempty"`
	ToState       models.State         `json:"to_state"`
	ActorType     models.ActorType     `json:"actor_type"`
	ActorID       string               `json:"actor_id"`
	OccurredAt    time.Time            `json:"occurred_at"`
	RequestID     string               `json:"request_id,omitempty"`
}

// Record is one outbox row awaiting publication.
type Record struct {
	ID        uuid.UUID
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// Store is the transactional outbox. Append participates in the caller's
// transaction when one is in context; relay methods run outside it.
type Store interface {
	Append(ctx context.Context, event Event) error
	FetchUnpublished(ctx context.Context, limit int) ([]Record, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}
