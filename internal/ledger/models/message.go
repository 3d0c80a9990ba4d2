package models

import (
	"time"

	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
)

// Message is the aggregate root for one ingested payment-instruction batch.
//
// Invariants:
//   - ExternalRef is a globally unique idempotency key
//   - CurrentState always equals the to_state of the highest seq_no event
//   - state changes go through the lifecycle engine only
//
// TotalPayments is the count declared by the source system. It is
// eventually-consistent metadata, not a hard invariant against the actual
// child payment count (partial batch ingestion may legitimately diverge).
type Message struct {
	ID                 id.MessageID `json:"id"`
	ExternalRef        string       `json:"external_ref"`
	SourceSystem       string       `json:"source_system"`
	CurrentState       State        `json:"current_state"`
	LastStateChangedAt time.Time    `json:"last_state_changed_at"`
	TotalPayments      int          `json:"total_payments"`
	Attributes         Metadata     `json:"attributes,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
}

func NewMessage(messageID id.MessageID, externalRef, sourceSystem string, totalPayments int, attributes Metadata, now time.Time) (*Message, error) {
	if externalRef == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "external_ref cannot be empty")
	}
	if len(externalRef) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "external_ref must be 128 characters or less")
	}
	if sourceSystem == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "source_system cannot be empty")
	}
	if totalPayments < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "total_payments cannot be negative")
	}
	return &Message{
		ID:                 messageID,
		ExternalRef:        externalRef,
		SourceSystem:       sourceSystem,
		CurrentState:       StateReceived,
		LastStateChangedAt: now,
		TotalPayments:      totalPayments,
		Attributes:         attributes.Copy(),
		CreatedAt:          now,
	}, nil
}
