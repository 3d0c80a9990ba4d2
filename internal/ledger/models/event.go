package models

import (
	"time"

	"github.com/google/uuid"

	id "remit/pkg/domain"
)

// ActorType classifies who requested a transition.
type ActorType string

const (
	ActorSystem  ActorType = "SYSTEM"
	ActorService ActorType = "SERVICE"
	ActorUser    ActorType = "USER"
)

// Actor identifies the caller that requested a transition. Recorded verbatim
// on the event for audit.
type Actor struct {
	Type ActorType `json:"type"`
	ID   string    `json:"id"`
}

// Metadata is free-form key/value context attached to events and route steps.
type Metadata map[string]string

// Copy returns an independent copy so stored events cannot be mutated through
// a caller-held map.
func (m Metadata) Copy() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// TransitionEvent is one immutable record of an aggregate moving between
// states.
//
// Invariants:
//   - (AggregateID, SeqNo) is unique; SeqNo is gap-free starting at 1
//   - FromState is StateNone only when SeqNo == 1
//   - an aggregate's current_state equals the ToState of its highest SeqNo
type TransitionEvent struct {
	ID            id.EventID    `json:"id"`
	AggregateKind AggregateKind `json:"aggregate_kind"`
	AggregateID   uuid.UUID     `json:"aggregate_id"`
	SeqNo         int64         `json:"seq_no"`
	FromState     State         `json:"from_state,omitempty"`
	ToState       State         `json:"to_state"`
	OccurredAt    time.Time     `json:"occurred_at"`
	Actor         Actor         `json:"actor"`
	Metadata      Metadata      `json:"metadata,omitempty"`
}

// Initial reports whether this event opened the aggregate's history.
func (e TransitionEvent) Initial() bool {
	return e.SeqNo == 1 && e.FromState == StateNone
}
