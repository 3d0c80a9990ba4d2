package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"remit/internal/audit"
	"remit/internal/ledger/models"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
	"remit/pkg/platform/sentinel"
	"remit/pkg/requestcontext"
)

// TransitionRequest asks the engine to move one aggregate to a new state.
//
// ExpectedState is an optional optimistic concurrency guard: when set, the
// transition only applies if the aggregate is still in that state. When
// unset, the state read at the start of the request is used, so a concurrent
// writer still causes at most one of the racing requests to win.
type TransitionRequest struct {
	Kind          models.AggregateKind
	AggregateID   uuid.UUID
	ToState       models.State
	ExpectedState models.State
	Actor         models.Actor
	Metadata      models.Metadata
}

// Transition applies one policy-checked state transition and records it as
// the aggregate's next event. The event append, projection update and audit
// emit form one unit of work.
func (s *Service) Transition(ctx context.Context, req TransitionRequest) (models.TransitionEvent, error) {
	start := time.Now()

	if err := validateTransitionRequest(req); err != nil {
		return models.TransitionEvent{}, err
	}

	current, _, err := s.store.CurrentState(ctx, req.Kind, req.AggregateID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.TransitionEvent{}, dErrors.Newf(dErrors.CodeNotFound, "%s %s not found", req.Kind, req.AggregateID)
		}
		return models.TransitionEvent{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read aggregate state")
	}

	if req.ExpectedState != models.StateNone && req.ExpectedState != current {
		s.observeTransition(req.Kind, "conflict", start)
		return models.TransitionEvent{}, dErrors.Newf(dErrors.CodeConcurrentModification,
			"aggregate is in state %s, not %s", current, req.ExpectedState)
	}
	if s.policy.Terminal(req.Kind, current) {
		s.observeTransition(req.Kind, "rejected", start)
		return models.TransitionEvent{}, dErrors.Newf(dErrors.CodeAlreadyTerminal,
			"aggregate reached terminal state %s", current)
	}
	if !s.policy.Allowed(req.Kind, current, req.ToState) {
		s.observeTransition(req.Kind, "rejected", start)
		return models.TransitionEvent{}, dErrors.Newf(dErrors.CodeTransitionRejected,
			"transition %s -> %s is not allowed for %s", current, req.ToState, req.Kind)
	}

	ev := models.TransitionEvent{
		ID:            id.EventID(uuid.New()),
		AggregateKind: req.Kind,
		AggregateID:   req.AggregateID,
		FromState:     current,
		ToState:       req.ToState,
		OccurredAt:    requestcontext.Now(ctx).UTC(),
		Actor:         req.Actor,
		Metadata:      req.Metadata.Copy(),
	}

	var stamped models.TransitionEvent
	err = s.runner.RunInTx(ctx, func(txCtx context.Context) error {
		appended, err := s.store.AppendTransition(txCtx, ev)
		if err != nil {
			return err
		}
		stamped = appended
		return s.emitAudit(txCtx, audit.Event{
			AggregateKind: stamped.AggregateKind,
			AggregateID:   stamped.AggregateID,
			SeqNo:         stamped.SeqNo,
			FromState:     stamped.FromState,
			ToState:       stamped.ToState,
			ActorType:     stamped.Actor.Type,
			ActorID:       stamped.Actor.ID,
			OccurredAt:    stamped.OccurredAt,
			RequestID:     requestcontext.RequestID(txCtx),
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrStateChanged):
			s.observeTransition(req.Kind, "conflict", start)
			return models.TransitionEvent{}, dErrors.New(dErrors.CodeConcurrentModification,
				"aggregate state changed concurrently")
		case errors.Is(err, sentinel.ErrNotFound):
			return models.TransitionEvent{}, dErrors.Newf(dErrors.CodeNotFound, "%s %s not found", req.Kind, req.AggregateID)
		}
		s.observeTransition(req.Kind, "error", start)
		return models.TransitionEvent{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to apply transition")
	}

	if s.stateCache != nil {
		s.stateCache.Invalidate(ctx, req.Kind, req.AggregateID)
	}
	s.observeTransition(req.Kind, "applied", start)
	s.logger.InfoContext(ctx, "transition applied",
		"kind", req.Kind,
		"aggregate_id", req.AggregateID,
		"seq_no", stamped.SeqNo,
		"from_state", stamped.FromState,
		"to_state", stamped.ToState,
		"actor", stamped.Actor.ID,
	)
	return stamped, nil
}

func validateTransitionRequest(req TransitionRequest) error {
	if _, ok := models.ParseAggregateKind(string(req.Kind)); !ok {
		return dErrors.New(dErrors.CodeValidation, "unknown aggregate kind")
	}
	if req.AggregateID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "aggregate id is required")
	}
	if _, ok := models.ParseState(string(req.ToState)); !ok {
		return dErrors.New(dErrors.CodeValidation, "unknown target state")
	}
	if req.ExpectedState != models.StateNone {
		if _, ok := models.ParseState(string(req.ExpectedState)); !ok {
			return dErrors.New(dErrors.CodeValidation, "unknown expected state")
		}
	}
	switch req.Actor.Type {
	case models.ActorSystem, models.ActorService, models.ActorUser:
	default:
		return dErrors.New(dErrors.CodeValidation, "unknown actor type")
	}
	if req.Actor.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "actor id is required")
	}
	return nil
}
