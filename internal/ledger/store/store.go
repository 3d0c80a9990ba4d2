// Package store defines the persistence contract for the ledger. The
// aggregate projection (current state) and the per-aggregate event log are
// one logical unit: implementations must never let one become observable
// without the other.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"remit/internal/ledger/models"
	id "remit/pkg/domain"
)

// Store persists messages, payments, their event histories and route chains.
//
// Atomicity contract:
//   - CreateBatch persists the message, its payments and every initial event
//     as one unit; a partially ingested batch is never observable.
//   - AppendTransition assigns the next seq_no, persists the event and
//     updates the aggregate projection atomically. Concurrent appends to one
//     aggregate are serialized; appends to different aggregates are not.
//   - AppendRouteStep assigns the next step_no under the per-payment lock.
//
// Stores return sentinel errors (sentinel.ErrNotFound, ErrAlreadyUsed,
// ErrStateChanged); services translate them into domain errors.
type Store interface {
	CreateBatch(ctx context.Context, msg *models.Message, payments []*models.Payment, initial []models.TransitionEvent) error
	FindMessage(ctx context.Context, messageID id.MessageID) (*models.Message, error)
	FindMessageByExternalRef(ctx context.Context, externalRef string) (*models.Message, error)
	FindPayment(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error)
	FindPaymentByRef(ctx context.Context, paymentRef string) (*models.Payment, error)
	ListPayments(ctx context.Context, messageID id.MessageID) ([]*models.Payment, error)

	// CurrentState reads the projection for one aggregate.
	CurrentState(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) (models.State, time.Time, error)
	// AppendTransition persists ev with the next seq_no if and only if the
	// aggregate's current state still equals ev.FromState. Returns the
	// stamped event.
	AppendTransition(ctx context.Context, ev models.TransitionEvent) (models.TransitionEvent, error)
	// History returns the aggregate's events ordered by seq_no.
	History(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) ([]models.TransitionEvent, error)

	AppendRouteStep(ctx context.Context, step models.RouteStep) (models.RouteStep, error)
	ListRouteSteps(ctx context.Context, paymentID id.PaymentID) ([]models.RouteStep, error)
}
