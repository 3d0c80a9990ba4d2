package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"remit/internal/audit"
	"remit/internal/ledger/models"
	refmodels "remit/internal/refdata/models"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
	"remit/pkg/platform/sentinel"
	"remit/pkg/requestcontext"
)

// IngestPayment is one payment instruction inside a batch.
type IngestPayment struct {
	PaymentRef  string
	Scheme      string
	AmountMinor int64
	Currency    string
	Debtor      refmodels.PartySnapshot
	Creditor    refmodels.PartySnapshot
	DebtorID    *id.PartyID
	CreditorID  *id.PartyID
}

// IngestRequest is one payment-instruction batch from a source system.
// ExternalRef is the batch's idempotency key.
type IngestRequest struct {
	ExternalRef  string
	SourceSystem string
	Attributes   models.Metadata
	Payments     []IngestPayment
	Actor        models.Actor
}

// IngestResult reports the batch's identifiers. Duplicate is true when the
// batch had already been ingested and the existing identifiers are returned.
type IngestResult struct {
	MessageID  id.MessageID
	PaymentIDs []id.PaymentID
	Duplicate  bool
}

// Ingest persists a batch: the message, its payments and every opening
// RECEIVED event, as one unit of work. Replays with a known external_ref
// return the original identifiers without writing anything.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	if len(req.Payments) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "batch must contain at least one payment")
	}
	if req.Actor.ID == "" {
		req.Actor = models.Actor{Type: models.ActorSystem, ID: req.SourceSystem}
	}

	if existing, err := s.store.FindMessageByExternalRef(ctx, req.ExternalRef); err == nil {
		return s.duplicateResult(ctx, existing)
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check external_ref")
	}

	now := requestcontext.Now(ctx).UTC()

	msg, err := models.NewMessage(id.MessageID(uuid.New()), req.ExternalRef, req.SourceSystem, len(req.Payments), req.Attributes, now)
	if err != nil {
		return nil, asValidation(err)
	}

	payments := make([]*models.Payment, 0, len(req.Payments))
	seen := make(map[string]struct{}, len(req.Payments))
	for _, in := range req.Payments {
		if _, dup := seen[in.PaymentRef]; dup {
			return nil, dErrors.Newf(dErrors.CodeValidation, "duplicate payment_ref %q in batch", in.PaymentRef)
		}
		seen[in.PaymentRef] = struct{}{}

		p, err := models.NewPayment(id.PaymentID(uuid.New()), msg.ID, in.PaymentRef, in.Scheme,
			in.AmountMinor, in.Currency, in.Debtor, in.Creditor, now)
		if err != nil {
			return nil, asValidation(err)
		}
		p.DebtorID = in.DebtorID
		p.CreditorID = in.CreditorID
		payments = append(payments, p)
	}

	initial := make([]models.TransitionEvent, 0, len(payments)+1)
	initial = append(initial, openingEvent(models.KindMessage, uuid.UUID(msg.ID), req.Actor, now))
	for _, p := range payments {
		initial = append(initial, openingEvent(models.KindPayment, uuid.UUID(p.ID), req.Actor, now))
	}

	err = s.runner.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.store.CreateBatch(txCtx, msg, payments, initial); err != nil {
			return err
		}
		for _, ev := range initial {
			auditEv := audit.Event{
				AggregateKind: ev.AggregateKind,
				AggregateID:   ev.AggregateID,
				SeqNo:         ev.SeqNo,
				ToState:       ev.ToState,
				ActorType:     ev.Actor.Type,
				ActorID:       ev.Actor.ID,
				OccurredAt:    ev.OccurredAt,
				RequestID:     requestcontext.RequestID(txCtx),
			}
			if err := s.emitAudit(txCtx, auditEv); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			// Lost an ingest race. If the winner carried our external_ref the
			// batch exists and we answer idempotently; otherwise a payment_ref
			// collides with a different batch.
			if existing, ferr := s.store.FindMessageByExternalRef(ctx, req.ExternalRef); ferr == nil {
				return s.duplicateResult(ctx, existing)
			}
			return nil, dErrors.New(dErrors.CodeConflict, "payment_ref already used by another batch")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to ingest batch")
	}

	if s.metrics != nil {
		s.metrics.IncrementIngested(len(payments))
	}
	s.logger.InfoContext(ctx, "batch ingested",
		"message_id", msg.ID,
		"external_ref", msg.ExternalRef,
		"source_system", msg.SourceSystem,
		"payments", len(payments),
	)

	result := &IngestResult{MessageID: msg.ID, PaymentIDs: make([]id.PaymentID, 0, len(payments))}
	for _, p := range payments {
		result.PaymentIDs = append(result.PaymentIDs, p.ID)
	}
	return result, nil
}

func (s *Service) duplicateResult(ctx context.Context, msg *models.Message) (*IngestResult, error) {
	payments, err := s.store.ListPayments(ctx, msg.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list batch payments")
	}
	result := &IngestResult{MessageID: msg.ID, Duplicate: true, PaymentIDs: make([]id.PaymentID, 0, len(payments))}
	for _, p := range payments {
		result.PaymentIDs = append(result.PaymentIDs, p.ID)
	}
	if s.metrics != nil {
		s.metrics.IncrementIngestDuplicate()
	}
	s.logger.InfoContext(ctx, "batch already ingested",
		"message_id", msg.ID,
		"external_ref", msg.ExternalRef,
	)
	return result, nil
}

func openingEvent(kind models.AggregateKind, aggregateID uuid.UUID, actor models.Actor, now time.Time) models.TransitionEvent {
	return models.TransitionEvent{
		ID:            id.EventID(uuid.New()),
		AggregateKind: kind,
		AggregateID:   aggregateID,
		SeqNo:         1,
		FromState:     models.StateNone,
		ToState:       models.StateReceived,
		OccurredAt:    now,
		Actor:         actor,
	}
}

// asValidation surfaces constructor invariant violations as caller
// validation errors.
func asValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		var de *dErrors.Error
		if errors.As(err, &de) {
			return dErrors.New(dErrors.CodeValidation, de.Message)
		}
	}
	return err
}
