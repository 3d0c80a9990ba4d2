// Package service orchestrates the payment lifecycle: batch ingestion,
// policy-checked state transitions, routing chains and read paths. Handlers
// stay thin; stores stay mechanical; the rules live here and in policy.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"remit/internal/audit"
	ledgermetrics "remit/internal/ledger/metrics"
	"remit/internal/ledger/models"
	"remit/internal/ledger/policy"
	id "remit/pkg/domain"
	"remit/pkg/platform/tx"
)

// Store is the persistence surface the service depends on. It mirrors the
// ledger store contract; see internal/ledger/store for the atomicity rules.
type Store interface {
	CreateBatch(ctx context.Context, msg *models.Message, payments []*models.Payment, initial []models.TransitionEvent) error
	FindMessage(ctx context.Context, messageID id.MessageID) (*models.Message, error)
	FindMessageByExternalRef(ctx context.Context, externalRef string) (*models.Message, error)
	FindPayment(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error)
	FindPaymentByRef(ctx context.Context, paymentRef string) (*models.Payment, error)
	ListPayments(ctx context.Context, messageID id.MessageID) ([]*models.Payment, error)
	CurrentState(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) (models.State, time.Time, error)
	AppendTransition(ctx context.Context, ev models.TransitionEvent) (models.TransitionEvent, error)
	History(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) ([]models.TransitionEvent, error)
	AppendRouteStep(ctx context.Context, step models.RouteStep) (models.RouteStep, error)
	ListRouteSteps(ctx context.Context, paymentID id.PaymentID) ([]models.RouteStep, error)
}

// AuditPublisher emits committed lifecycle changes to the outbox. Emit runs
// inside the same unit of work as the change it records.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// StateCache is an optional read-through cache for current aggregate state.
// Misses and failures fall back to the store; entries are invalidated on
// every applied transition.
type StateCache interface {
	Get(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) (models.State, time.Time, bool)
	Set(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID, state models.State, changedAt time.Time)
	Invalidate(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID)
}

// Service coordinates the ledger's write and read paths.
type Service struct {
	store          Store
	policy         *policy.Policy
	runner         tx.Runner
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *ledgermetrics.Metrics
	stateCache     StateCache
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *ledgermetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRunner sets the unit-of-work runner. Postgres deployments pass the
// store's transaction runner; memory deployments keep the default
// passthrough.
func WithRunner(r tx.Runner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

func WithStateCache(c StateCache) Option {
	return func(s *Service) {
		s.stateCache = c
	}
}

// New constructs a Service around a store and the fixed transition policy.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		policy: policy.New(),
		runner: tx.Nop{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) emitAudit(ctx context.Context, ev audit.Event) error {
	if s.auditPublisher == nil {
		return nil
	}
	return s.auditPublisher.Emit(ctx, ev)
}

func (s *Service) observeTransition(kind models.AggregateKind, result string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveTransition(string(kind), result, start)
}
