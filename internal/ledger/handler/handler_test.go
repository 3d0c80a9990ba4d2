package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"remit/internal/ledger/handler/mocks"
	"remit/internal/ledger/models"
	"remit/internal/ledger/service"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
)

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(mockService, logger).Register(r)
	return r, mockService
}

func ingestBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(IngestRequest{
		ExternalRef:  "batch-001",
		SourceSystem: "gateway-eu",
		Payments: []IngestPaymentPayload{{
			PaymentRef:  "pay-001",
			Scheme:      "SEPA",
			AmountMinor: 12550,
			Currency:    "EUR",
			Debtor:      PartySnapshotPayload{DisplayName: "Acme GmbH"},
			Creditor:    PartySnapshotPayload{DisplayName: "Globex Ltd"},
		}},
	})
	require.NoError(t, err)
	return body
}

func TestHandleIngest(t *testing.T) {
	t.Run("new batch returns 201 with identifiers", func(t *testing.T) {
		r, mockService := newTestRouter(t)
		messageID := id.MessageID(uuid.New())
		paymentID := id.PaymentID(uuid.New())
		mockService.EXPECT().Ingest(gomock.Any(), gomock.Any()).
			Return(&service.IngestResult{MessageID: messageID, PaymentIDs: []id.PaymentID{paymentID}}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ingest", bytes.NewReader(ingestBody(t))))

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp IngestResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, messageID, resp.MessageID)
		assert.Equal(t, []id.PaymentID{paymentID}, resp.PaymentIDs)
		assert.False(t, resp.Duplicate)
	})

	t.Run("replayed batch returns 200", func(t *testing.T) {
		r, mockService := newTestRouter(t)
		mockService.EXPECT().Ingest(gomock.Any(), gomock.Any()).
			Return(&service.IngestResult{MessageID: id.MessageID(uuid.New()), Duplicate: true}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ingest", bytes.NewReader(ingestBody(t))))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ingest", bytes.NewReader([]byte("{"))))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "bad_request", resp["error"])
	})

	t.Run("missing external_ref returns 400 before the service", func(t *testing.T) {
		r, _ := newTestRouter(t)
		body, err := json.Marshal(IngestRequest{SourceSystem: "gateway-eu"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ingest", bytes.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleTransition(t *testing.T) {
	aggregateID := uuid.New()
	path := "/aggregates/message/" + aggregateID.String() + "/transitions"
	body := func(t *testing.T) []byte {
		b, err := json.Marshal(TransitionRequest{
			ToState: "VALIDATED",
			Actor:   ActorPayload{Type: "SERVICE", ID: "validator-1"},
		})
		require.NoError(t, err)
		return b
	}

	t.Run("applied transition returns 201 with the event", func(t *testing.T) {
		r, mockService := newTestRouter(t)
		mockService.EXPECT().Transition(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req service.TransitionRequest) (models.TransitionEvent, error) {
				assert.Equal(t, models.KindMessage, req.Kind)
				assert.Equal(t, aggregateID, req.AggregateID)
				assert.Equal(t, models.StateValidated, req.ToState)
				return models.TransitionEvent{
					AggregateKind: req.Kind,
					AggregateID:   req.AggregateID,
					SeqNo:         2,
					FromState:     models.StateReceived,
					ToState:       req.ToState,
					OccurredAt:    time.Now().UTC(),
				}, nil
			})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body(t))))

		assert.Equal(t, http.StatusCreated, w.Code)
		var ev models.TransitionEvent
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ev))
		assert.Equal(t, int64(2), ev.SeqNo)
	})

	t.Run("rejected transition maps to 422", func(t *testing.T) {
		r, mockService := newTestRouter(t)
		mockService.EXPECT().Transition(gomock.Any(), gomock.Any()).
			Return(models.TransitionEvent{}, dErrors.New(dErrors.CodeTransitionRejected, "transition RECEIVED -> SETTLED is not allowed for message"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body(t))))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "transition_rejected", resp["error"])
	})

	t.Run("concurrent modification maps to 409", func(t *testing.T) {
		r, mockService := newTestRouter(t)
		mockService.EXPECT().Transition(gomock.Any(), gomock.Any()).
			Return(models.TransitionEvent{}, dErrors.New(dErrors.CodeConcurrentModification, "aggregate state changed concurrently"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body(t))))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown kind returns 400", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/aggregates/invoice/"+aggregateID.String()+"/transitions", bytes.NewReader(body(t))))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("internal failure hides detail", func(t *testing.T) {
		r, mockService := newTestRouter(t)
		mockService.EXPECT().Transition(gomock.Any(), gomock.Any()).
			Return(models.TransitionEvent{}, dErrors.New(dErrors.CodeInternal, "pq: connection refused"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body(t))))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "internal_error", resp["error"])
		assert.NotContains(t, resp, "error_description")
	})
}

func TestHandleReads(t *testing.T) {
	t.Run("state returns the projection", func(t *testing.T) {
		r, mockService := newTestRouter(t)
		aggregateID := uuid.New()
		mockService.EXPECT().GetCurrentState(gomock.Any(), models.KindPayment, aggregateID).
			Return(service.StateResult{
				Kind:        models.KindPayment,
				AggregateID: aggregateID,
				State:       models.StateRouted,
			}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/aggregates/payment/"+aggregateID.String()+"/state", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp service.StateResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, models.StateRouted, resp.State)
	})

	t.Run("history of unknown aggregate returns 404", func(t *testing.T) {
		r, mockService := newTestRouter(t)
		aggregateID := uuid.New()
		mockService.EXPECT().GetHistory(gomock.Any(), models.KindMessage, aggregateID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "message not found"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/aggregates/message/"+aggregateID.String()+"/history", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed aggregate id returns 400", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/aggregates/message/not-a-uuid/state", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleRouteSteps(t *testing.T) {
	paymentID := id.PaymentID(uuid.New())

	t.Run("append returns 201 with assigned step_no", func(t *testing.T) {
		r, mockService := newTestRouter(t)
		mockService.EXPECT().AppendRouteStep(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req service.RouteStepRequest) (models.RouteStep, error) {
				assert.Equal(t, paymentID, req.PaymentID)
				assert.Equal(t, models.RoleSenderBank, req.Role)
				step := models.RouteStep{
					PaymentID:   req.PaymentID,
					StepNo:      1,
					Role:        req.Role,
					Institution: req.Institution,
					RecordedAt:  time.Now().UTC(),
				}
				return step, nil
			})

		body, err := json.Marshal(RouteStepRequest{
			Role:        "SENDER_BANK",
			Institution: InstitutionPayload{LegalName: "Acme Bank AG", CountryCode: "DE"},
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments/"+paymentID.String()+"/route-steps", bytes.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		var step models.RouteStep
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &step))
		assert.Equal(t, 1, step.StepNo)
	})

	t.Run("unknown role returns 400", func(t *testing.T) {
		r, _ := newTestRouter(t)
		body, err := json.Marshal(RouteStepRequest{
			Role:        "CLEARING_HOUSE",
			Institution: InstitutionPayload{LegalName: "Acme Bank AG", CountryCode: "DE"},
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments/"+paymentID.String()+"/route-steps", bytes.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("route read returns ordered steps", func(t *testing.T) {
		r, mockService := newTestRouter(t)
		mockService.EXPECT().GetRoute(gomock.Any(), paymentID).
			Return([]models.RouteStep{
				{PaymentID: paymentID, StepNo: 1, Role: models.RoleSenderBank},
				{PaymentID: paymentID, StepNo: 2, Role: models.RoleReceiverBank},
			}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/"+paymentID.String()+"/route", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Steps []models.RouteStep `json:"steps"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Steps, 2)
		assert.Equal(t, 1, resp.Steps[0].StepNo)
	})
}
