package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"remit/internal/ledger/models"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
	"remit/pkg/platform/sentinel"
)

// StateResult is the current projection of one aggregate.
type StateResult struct {
	Kind          models.AggregateKind `json:"aggregate_kind"`
	AggregateID   uuid.UUID            `json:"aggregate_id"`
	State         models.State         `json:"current_state"`
	LastChangedAt time.Time            `json:"last_state_changed_at"`
}

// MessageDetails is a message together with its payments.
type MessageDetails struct {
	Message  *models.Message   `json:"message"`
	Payments []*models.Payment `json:"payments"`
}

// GetCurrentState reads the aggregate projection, served from the state
// cache when possible. The projection always equals the to_state of the
// aggregate's highest seq_no event.
func (s *Service) GetCurrentState(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) (StateResult, error) {
	if _, ok := models.ParseAggregateKind(string(kind)); !ok {
		return StateResult{}, dErrors.New(dErrors.CodeValidation, "unknown aggregate kind")
	}
	if aggregateID == uuid.Nil {
		return StateResult{}, dErrors.New(dErrors.CodeValidation, "aggregate id is required")
	}

	if s.stateCache != nil {
		if state, changedAt, ok := s.stateCache.Get(ctx, kind, aggregateID); ok {
			return StateResult{Kind: kind, AggregateID: aggregateID, State: state, LastChangedAt: changedAt}, nil
		}
	}

	state, changedAt, err := s.store.CurrentState(ctx, kind, aggregateID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return StateResult{}, dErrors.Newf(dErrors.CodeNotFound, "%s %s not found", kind, aggregateID)
		}
		return StateResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read aggregate state")
	}

	if s.stateCache != nil {
		s.stateCache.Set(ctx, kind, aggregateID, state, changedAt)
	}
	return StateResult{Kind: kind, AggregateID: aggregateID, State: state, LastChangedAt: changedAt}, nil
}

// GetHistory returns the aggregate's full event history ordered by seq_no.
func (s *Service) GetHistory(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) ([]models.TransitionEvent, error) {
	if _, ok := models.ParseAggregateKind(string(kind)); !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown aggregate kind")
	}
	if aggregateID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeValidation, "aggregate id is required")
	}

	history, err := s.store.History(ctx, kind, aggregateID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "%s %s not found", kind, aggregateID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read history")
	}
	if len(history) == 0 {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "%s %s not found", kind, aggregateID)
	}
	return history, nil
}

// GetMessage returns a message with its payments.
func (s *Service) GetMessage(ctx context.Context, messageID id.MessageID) (*MessageDetails, error) {
	if messageID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "message id is required")
	}
	msg, err := s.store.FindMessage(ctx, messageID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "message %s not found", messageID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load message")
	}
	payments, err := s.store.ListPayments(ctx, messageID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load batch payments")
	}
	return &MessageDetails{Message: msg, Payments: payments}, nil
}

// GetPayment returns one payment.
func (s *Service) GetPayment(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error) {
	if paymentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "payment id is required")
	}
	p, err := s.store.FindPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "payment %s not found", paymentID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load payment")
	}
	return p, nil
}
