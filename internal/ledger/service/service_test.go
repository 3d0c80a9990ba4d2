package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AuditPublisher,StateCache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"remit/internal/audit"
	"remit/internal/ledger/models"
	"remit/internal/ledger/store/memory"
	refmodels "remit/internal/refdata/models"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
	"remit/pkg/requestcontext"
)

// ServiceSuite exercises the service against the real in-memory store so the
// atomicity and ordering guarantees are tested end to end, not against mocks.
type ServiceSuite struct {
	suite.Suite
	store   *memory.InMemory
	outbox  *audit.InMemoryStore
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.NewInMemory()
	s.outbox = audit.NewInMemoryStore()
	s.service = New(s.store, WithAuditPublisher(audit.NewPublisher(s.outbox)))
}

func partySnapshot(name string) refmodels.PartySnapshot {
	return refmodels.PartySnapshot{DisplayName: name, TakenAt: time.Now().UTC()}
}

func (s *ServiceSuite) ingestRequest(externalRef string, refs ...string) IngestRequest {
	payments := make([]IngestPayment, 0, len(refs))
	for _, ref := range refs {
		payments = append(payments, IngestPayment{
			PaymentRef:  ref,
			Scheme:      "SEPA",
			AmountMinor: 12550,
			Currency:    "EUR",
			Debtor:      partySnapshot("Acme GmbH"),
			Creditor:    partySnapshot("Globex Ltd"),
		})
	}
	return IngestRequest{
		ExternalRef:  externalRef,
		SourceSystem: "gateway-eu",
		Payments:     payments,
	}
}

func (s *ServiceSuite) TestIngest() {
	ctx := context.Background()

	s.Run("creates message, payments and opening events", func() {
		result, err := s.service.Ingest(ctx, s.ingestRequest("batch-001", "pay-001", "pay-002"))
		s.Require().NoError(err)
		s.False(result.Duplicate)
		s.Len(result.PaymentIDs, 2)

		details, err := s.service.GetMessage(ctx, result.MessageID)
		s.Require().NoError(err)
		s.Equal(models.StateReceived, details.Message.CurrentState)
		s.Len(details.Payments, 2)
		for _, p := range details.Payments {
			s.Equal(models.StateReceived, p.CurrentState)
			history, err := s.service.GetHistory(ctx, models.KindPayment, uuid.UUID(p.ID))
			s.Require().NoError(err)
			s.Require().Len(history, 1)
			s.Equal(int64(1), history[0].SeqNo)
			s.Equal(models.StateNone, history[0].FromState)
			s.Equal(models.StateReceived, history[0].ToState)
		}

		records, err := s.outbox.FetchUnpublished(ctx, 10)
		s.Require().NoError(err)
		s.Len(records, 3)
	})

	s.Run("replay returns original identifiers without writing", func() {
		first, err := s.service.Ingest(ctx, s.ingestRequest("batch-002", "pay-010"))
		s.Require().NoError(err)

		second, err := s.service.Ingest(ctx, s.ingestRequest("batch-002", "pay-010"))
		s.Require().NoError(err)
		s.True(second.Duplicate)
		s.Equal(first.MessageID, second.MessageID)
		s.Equal(first.PaymentIDs, second.PaymentIDs)

		history, err := s.service.GetHistory(ctx, models.KindMessage, uuid.UUID(first.MessageID))
		s.Require().NoError(err)
		s.Len(history, 1)
	})

	s.Run("empty batch rejected", func() {
		_, err := s.service.Ingest(ctx, IngestRequest{ExternalRef: "batch-003", SourceSystem: "gateway-eu"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("duplicate payment_ref within batch rejected", func() {
		_, err := s.service.Ingest(ctx, s.ingestRequest("batch-004", "pay-020", "pay-020"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("invalid currency rejected as validation error", func() {
		req := s.ingestRequest("batch-005", "pay-030")
		req.Payments[0].Currency = "euro"
		_, err := s.service.Ingest(ctx, req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("payment_ref collision with another batch conflicts", func() {
		_, err := s.service.Ingest(ctx, s.ingestRequest("batch-006", "pay-040"))
		s.Require().NoError(err)

		_, err = s.service.Ingest(ctx, s.ingestRequest("batch-007", "pay-040"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *ServiceSuite) TestTransition() {
	ctx := context.Background()
	actor := models.Actor{Type: models.ActorService, ID: "validator-1"}

	s.Run("walk to VALIDATED then ENRICHED yields history of three", func() {
		result, err := s.service.Ingest(ctx, s.ingestRequest("batch-100", "pay-100"))
		s.Require().NoError(err)
		msgID := uuid.UUID(result.MessageID)

		ev, err := s.service.Transition(ctx, TransitionRequest{
			Kind:        models.KindMessage,
			AggregateID: msgID,
			ToState:     models.StateValidated,
			Actor:       actor,
		})
		s.Require().NoError(err)
		s.Equal(int64(2), ev.SeqNo)
		s.Equal(models.StateReceived, ev.FromState)

		_, err = s.service.Transition(ctx, TransitionRequest{
			Kind:        models.KindMessage,
			AggregateID: msgID,
			ToState:     models.StateEnriched,
			Actor:       actor,
			Metadata:    models.Metadata{"reason": "reference data resolved"},
		})
		s.Require().NoError(err)

		history, err := s.service.GetHistory(ctx, models.KindMessage, msgID)
		s.Require().NoError(err)
		s.Require().Len(history, 3)
		for i, ev := range history {
			s.Equal(int64(i+1), ev.SeqNo)
		}
		s.Equal("reference data resolved", history[2].Metadata["reason"])

		state, err := s.service.GetCurrentState(ctx, models.KindMessage, msgID)
		s.Require().NoError(err)
		s.Equal(models.StateEnriched, state.State)
		s.Equal(history[2].ToState, state.State)
	})

	s.Run("illegal jump rejected without history growth", func() {
		result, err := s.service.Ingest(ctx, s.ingestRequest("batch-101", "pay-101"))
		s.Require().NoError(err)
		msgID := uuid.UUID(result.MessageID)

		_, err = s.service.Transition(ctx, TransitionRequest{
			Kind:        models.KindMessage,
			AggregateID: msgID,
			ToState:     models.StateSettled,
			Actor:       actor,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeTransitionRejected))

		history, err := s.service.GetHistory(ctx, models.KindMessage, msgID)
		s.Require().NoError(err)
		s.Len(history, 1)
	})

	s.Run("terminal aggregate rejects further transitions", func() {
		result, err := s.service.Ingest(ctx, s.ingestRequest("batch-102", "pay-102"))
		s.Require().NoError(err)
		msgID := uuid.UUID(result.MessageID)

		_, err = s.service.Transition(ctx, TransitionRequest{
			Kind:        models.KindMessage,
			AggregateID: msgID,
			ToState:     models.StateRejected,
			Actor:       actor,
			Metadata:    models.Metadata{"reason": "sanctions hit"},
		})
		s.Require().NoError(err)

		_, err = s.service.Transition(ctx, TransitionRequest{
			Kind:        models.KindMessage,
			AggregateID: msgID,
			ToState:     models.StateValidated,
			Actor:       actor,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyTerminal))
	})

	s.Run("stale expected state yields concurrent modification", func() {
		result, err := s.service.Ingest(ctx, s.ingestRequest("batch-103", "pay-103"))
		s.Require().NoError(err)
		msgID := uuid.UUID(result.MessageID)

		_, err = s.service.Transition(ctx, TransitionRequest{
			Kind:        models.KindMessage,
			AggregateID: msgID,
			ToState:     models.StateValidated,
			Actor:       actor,
		})
		s.Require().NoError(err)

		_, err = s.service.Transition(ctx, TransitionRequest{
			Kind:          models.KindMessage,
			AggregateID:   msgID,
			ToState:       models.StateValidated,
			ExpectedState: models.StateReceived,
			Actor:         actor,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConcurrentModification))
	})

	s.Run("unknown aggregate yields not found", func() {
		_, err := s.service.Transition(ctx, TransitionRequest{
			Kind:        models.KindMessage,
			AggregateID: uuid.New(),
			ToState:     models.StateValidated,
			Actor:       actor,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("transition timestamps come from request context", func() {
		result, err := s.service.Ingest(ctx, s.ingestRequest("batch-104", "pay-104"))
		s.Require().NoError(err)
		msgID := uuid.UUID(result.MessageID)

		at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
		ev, err := s.service.Transition(requestcontext.WithTime(ctx, at), TransitionRequest{
			Kind:        models.KindMessage,
			AggregateID: msgID,
			ToState:     models.StateValidated,
			Actor:       actor,
		})
		s.Require().NoError(err)
		s.Equal(at, ev.OccurredAt)
	})
}

func (s *ServiceSuite) TestReads() {
	ctx := context.Background()

	s.Run("history of unknown aggregate yields not found", func() {
		_, err := s.service.GetHistory(ctx, models.KindMessage, uuid.New())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.False(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("state of unknown aggregate yields not found", func() {
		_, err := s.service.GetCurrentState(ctx, models.KindPayment, uuid.New())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("history is seq_no ordered and matches projection", func() {
		result, err := s.service.Ingest(ctx, s.ingestRequest("batch-500", "pay-500"))
		s.Require().NoError(err)
		msgID := uuid.UUID(result.MessageID)

		_, err = s.service.Transition(ctx, TransitionRequest{
			Kind:        models.KindMessage,
			AggregateID: msgID,
			ToState:     models.StateValidated,
			Actor:       models.Actor{Type: models.ActorService, ID: "validator-1"},
		})
		s.Require().NoError(err)

		history, err := s.service.GetHistory(ctx, models.KindMessage, msgID)
		s.Require().NoError(err)
		s.Require().Len(history, 2)
		for i, ev := range history {
			s.Equal(int64(i+1), ev.SeqNo)
		}

		state, err := s.service.GetCurrentState(ctx, models.KindMessage, msgID)
		s.Require().NoError(err)
		s.Equal(history[len(history)-1].ToState, state.State)
	})
}

func (s *ServiceSuite) TestTransitionConcurrentRace() {
	ctx := context.Background()
	result, err := s.service.Ingest(ctx, s.ingestRequest("batch-200", "pay-200"))
	s.Require().NoError(err)
	msgID := uuid.UUID(result.MessageID)

	const racers = 16
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.service.Transition(ctx, TransitionRequest{
				Kind:          models.KindMessage,
				AggregateID:   msgID,
				ToState:       models.StateValidated,
				ExpectedState: models.StateReceived,
				Actor:         models.Actor{Type: models.ActorService, ID: "racer"},
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		s.True(dErrors.HasCode(err, dErrors.CodeConcurrentModification) ||
			dErrors.HasCode(err, dErrors.CodeTransitionRejected))
	}
	s.Equal(1, winners)

	history, err := s.service.GetHistory(ctx, models.KindMessage, msgID)
	s.Require().NoError(err)
	s.Len(history, 2)
}

func (s *ServiceSuite) TestIngestConcurrentRace() {
	ctx := context.Background()

	const racers = 8
	var wg sync.WaitGroup
	results := make([]*IngestResult, racers)
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.service.Ingest(ctx, s.ingestRequest("batch-300", "pay-300"))
		}(i)
	}
	wg.Wait()

	var messageID uuid.UUID
	for i := range results {
		s.Require().NoError(errs[i])
		if messageID == uuid.Nil {
			messageID = uuid.UUID(results[i].MessageID)
		}
		s.Equal(messageID, uuid.UUID(results[i].MessageID))
	}

	history, err := s.service.GetHistory(ctx, models.KindMessage, messageID)
	s.Require().NoError(err)
	s.Len(history, 1)
}

func (s *ServiceSuite) TestRoute() {
	ctx := context.Background()
	result, err := s.service.Ingest(ctx, s.ingestRequest("batch-400", "pay-400"))
	s.Require().NoError(err)
	paymentID := result.PaymentIDs[0]

	s.Run("three appends produce steps 1..3 in order", func() {
		roles := []models.RouteRole{models.RoleSenderBank, models.RoleIntermediary, models.RoleReceiverBank}
		for _, role := range roles {
			step, err := s.service.AppendRouteStep(ctx, RouteStepRequest{
				PaymentID: paymentID,
				Role:      role,
				Institution: refmodels.InstitutionSnapshot{
					LegalName:   "Bank " + string(role),
					CountryCode: "DE",
				},
			})
			s.Require().NoError(err)
			s.Equal(role, step.Role)
		}

		route, err := s.service.GetRoute(ctx, paymentID)
		s.Require().NoError(err)
		s.Require().Len(route, 3)
		for i, step := range route {
			s.Equal(i+1, step.StepNo)
			s.Equal(roles[i], step.Role)
		}
	})

	s.Run("unknown payment yields not found", func() {
		_, err := s.service.AppendRouteStep(ctx, RouteStepRequest{
			PaymentID: id.PaymentID(uuid.New()),
			Role:      models.RoleSenderBank,
			Institution: refmodels.InstitutionSnapshot{
				LegalName:   "Unknown Bank",
				CountryCode: "DE",
			},
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown role rejected", func() {
		_, err := s.service.AppendRouteStep(ctx, RouteStepRequest{
			PaymentID: paymentID,
			Role:      "CLEARING_HOUSE",
			Institution: refmodels.InstitutionSnapshot{
				LegalName:   "Bank",
				CountryCode: "DE",
			},
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
