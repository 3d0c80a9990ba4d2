// Package memory provides the in-memory ledger store used in dev mode and
// unit tests. One mutex guards all maps; that serializes appends to a single
// aggregate (the contract) at the cost of also serializing unrelated writes,
// which is acceptable for a non-distributed store.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"remit/internal/ledger/models"
	id "remit/pkg/domain"
	"remit/pkg/platform/sentinel"
)

// InMemory implements store.Store backed by maps.
type InMemory struct {
	mu sync.RWMutex

	messages      map[id.MessageID]*models.Message
	byExternalRef map[string]id.MessageID

	payments     map[id.PaymentID]*models.Payment
	byPaymentRef map[string]id.PaymentID
	byMessage    map[id.MessageID][]id.PaymentID

	events map[models.AggregateKind]map[uuid.UUID][]models.TransitionEvent
	routes map[id.PaymentID][]models.RouteStep
}

func NewInMemory() *InMemory {
	return &InMemory{
		messages:      make(map[id.MessageID]*models.Message),
		byExternalRef: make(map[string]id.MessageID),
		payments:      make(map[id.PaymentID]*models.Payment),
		byPaymentRef:  make(map[string]id.PaymentID),
		byMessage:     make(map[id.MessageID][]id.PaymentID),
		events: map[models.AggregateKind]map[uuid.UUID][]models.TransitionEvent{
			models.KindMessage: {},
			models.KindPayment: {},
		},
		routes: make(map[id.PaymentID][]models.RouteStep),
	}
}

func (s *InMemory) CreateBatch(ctx context.Context, msg *models.Message, payments []*models.Payment, initial []models.TransitionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byExternalRef[msg.ExternalRef]; taken {
		return fmt.Errorf("external_ref %q: %w", msg.ExternalRef, sentinel.ErrAlreadyUsed)
	}
	for _, p := range payments {
		if _, taken := s.byPaymentRef[p.PaymentRef]; taken {
			return fmt.Errorf("payment_ref %q: %w", p.PaymentRef, sentinel.ErrAlreadyUsed)
		}
	}

	msgCopy := *msg
	s.messages[msg.ID] = &msgCopy
	s.byExternalRef[msg.ExternalRef] = msg.ID

	for _, p := range payments {
		pCopy := *p
		s.payments[p.ID] = &pCopy
		s.byPaymentRef[p.PaymentRef] = p.ID
		s.byMessage[p.MessageID] = append(s.byMessage[p.MessageID], p.ID)
	}

	for _, ev := range initial {
		ev.SeqNo = 1
		ev.Metadata = ev.Metadata.Copy()
		s.events[ev.AggregateKind][ev.AggregateID] = []models.TransitionEvent{ev}
	}
	return nil
}

func (s *InMemory) FindMessage(ctx context.Context, messageID id.MessageID) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[messageID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *msg
	return &out, nil
}

func (s *InMemory) FindMessageByExternalRef(ctx context.Context, externalRef string) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messageID, ok := s.byExternalRef[externalRef]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *s.messages[messageID]
	return &out, nil
}

func (s *InMemory) FindPayment(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (s *InMemory) FindPaymentByRef(ctx context.Context, paymentRef string) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paymentID, ok := s.byPaymentRef[paymentRef]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *s.payments[paymentID]
	return &out, nil
}

func (s *InMemory) ListPayments(ctx context.Context, messageID id.MessageID) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.messages[messageID]; !ok {
		return nil, sentinel.ErrNotFound
	}
	ids := s.byMessage[messageID]
	out := make([]*models.Payment, 0, len(ids))
	for _, paymentID := range ids {
		p := *s.payments[paymentID]
		out = append(out, &p)
	}
	return out, nil
}

func (s *InMemory) CurrentState(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) (models.State, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.currentStateLocked(kind, aggregateID)
}

func (s *InMemory) currentStateLocked(kind models.AggregateKind, aggregateID uuid.UUID) (models.State, time.Time, error) {
	switch kind {
	case models.KindMessage:
		if msg, ok := s.messages[id.MessageID(aggregateID)]; ok {
			return msg.CurrentState, msg.LastStateChangedAt, nil
		}
	case models.KindPayment:
		if p, ok := s.payments[id.PaymentID(aggregateID)]; ok {
			return p.CurrentState, p.LastStateChangedAt, nil
		}
	}
	return "", time.Time{}, sentinel.ErrNotFound
}

func (s *InMemory) AppendTransition(ctx context.Context, ev models.TransitionEvent) (models.TransitionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, _, err := s.currentStateLocked(ev.AggregateKind, ev.AggregateID)
	if err != nil {
		return models.TransitionEvent{}, err
	}
	if current != ev.FromState {
		return models.TransitionEvent{}, fmt.Errorf("expected %s, aggregate is %s: %w", ev.FromState, current, sentinel.ErrStateChanged)
	}

	history := s.events[ev.AggregateKind][ev.AggregateID]
	ev.SeqNo = int64(len(history)) + 1
	ev.Metadata = ev.Metadata.Copy()
	s.events[ev.AggregateKind][ev.AggregateID] = append(history, ev)

	switch ev.AggregateKind {
	case models.KindMessage:
		msg := s.messages[id.MessageID(ev.AggregateID)]
		msg.CurrentState = ev.ToState
		msg.LastStateChangedAt = ev.OccurredAt
	case models.KindPayment:
		p := s.payments[id.PaymentID(ev.AggregateID)]
		p.CurrentState = ev.ToState
		p.LastStateChangedAt = ev.OccurredAt
	}
	return ev, nil
}

func (s *InMemory) History(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) ([]models.TransitionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, _, err := s.currentStateLocked(kind, aggregateID); err != nil {
		return nil, err
	}
	history := s.events[kind][aggregateID]
	out := make([]models.TransitionEvent, len(history))
	copy(out, history)
	return out, nil
}

func (s *InMemory) AppendRouteStep(ctx context.Context, step models.RouteStep) (models.RouteStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[step.PaymentID]; !ok {
		return models.RouteStep{}, sentinel.ErrNotFound
	}
	step.StepNo = len(s.routes[step.PaymentID]) + 1
	step.Metadata = step.Metadata.Copy()
	s.routes[step.PaymentID] = append(s.routes[step.PaymentID], step)
	return step, nil
}

func (s *InMemory) ListRouteSteps(ctx context.Context, paymentID id.PaymentID) ([]models.RouteStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.payments[paymentID]; !ok {
		return nil, sentinel.ErrNotFound
	}
	steps := s.routes[paymentID]
	out := make([]models.RouteStep, len(steps))
	copy(out, steps)
	return out, nil
}
