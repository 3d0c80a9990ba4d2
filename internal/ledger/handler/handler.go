// Package handler exposes the ledger over HTTP. Handlers decode, validate and
// delegate; every rule lives in the service layer.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"remit/internal/ledger/models"
	"remit/internal/ledger/service"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
	"remit/pkg/platform/httputil"
	"remit/pkg/requestcontext"
)

// Service defines the ledger operations the handler depends on.
type Service interface {
	Ingest(ctx context.Context, req service.IngestRequest) (*service.IngestResult, error)
	Transition(ctx context.Context, req service.TransitionRequest) (models.TransitionEvent, error)
	GetCurrentState(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) (service.StateResult, error)
	GetHistory(ctx context.Context, kind models.AggregateKind, aggregateID uuid.UUID) ([]models.TransitionEvent, error)
	AppendRouteStep(ctx context.Context, req service.RouteStepRequest) (models.RouteStep, error)
	GetRoute(ctx context.Context, paymentID id.PaymentID) ([]models.RouteStep, error)
	GetMessage(ctx context.Context, messageID id.MessageID) (*service.MessageDetails, error)
	GetPayment(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error)
}

// Handler handles ledger endpoints.
type Handler struct {
	ledger Service
	logger *slog.Logger
}

// New creates a ledger Handler.
func New(ledger Service, logger *slog.Logger) *Handler {
	return &Handler{ledger: ledger, logger: logger}
}

// Register mounts the ledger routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/ingest", h.handleIngest)
	r.Route("/aggregates/{kind}/{id}", func(r chi.Router) {
		r.Post("/transitions", h.handleTransition)
		r.Get("/state", h.handleState)
		r.Get("/history", h.handleHistory)
	})
	r.Route("/payments/{id}", func(r chi.Router) {
		r.Get("/", h.handleGetPayment)
		r.Post("/route-steps", h.handleAppendRouteStep)
		r.Get("/route", h.handleGetRoute)
	})
	r.Get("/messages/{id}", h.handleGetMessage)
}

func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[IngestRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.ledger.Ingest(ctx, req.toService(requestcontext.Now(ctx).UTC()))
	if err != nil {
		h.logFailure(ctx, "ingest failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	httputil.WriteJSON(w, status, ingestResponse(result))
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	kind, aggregateID, err := aggregateParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransitionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	ev, err := h.ledger.Transition(ctx, service.TransitionRequest{
		Kind:          kind,
		AggregateID:   aggregateID,
		ToState:       models.State(req.ToState),
		ExpectedState: models.State(req.ExpectedCurrentState),
		Actor:         models.Actor{Type: models.ActorType(req.Actor.Type), ID: req.Actor.ID},
		Metadata:      req.Metadata,
	})
	if err != nil {
		h.logFailure(ctx, "transition failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ev)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, aggregateID, err := aggregateParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	state, err := h.ledger.GetCurrentState(ctx, kind, aggregateID)
	if err != nil {
		h.logFailure(ctx, "state read failed", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, aggregateID, err := aggregateParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	history, err := h.ledger.GetHistory(ctx, kind, aggregateID)
	if err != nil {
		h.logFailure(ctx, "history read failed", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": history})
}

func (h *Handler) handleAppendRouteStep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	paymentID, err := id.ParsePaymentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[RouteStepRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	step, err := h.ledger.AppendRouteStep(ctx, service.RouteStepRequest{
		PaymentID:   paymentID,
		Role:        models.RouteRole(req.Role),
		Institution: req.Institution.snapshot(requestcontext.Now(ctx).UTC()),
		Metadata:    req.Metadata,
	})
	if err != nil {
		h.logFailure(ctx, "route step append failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, step)
}

func (h *Handler) handleGetRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	paymentID, err := id.ParsePaymentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	steps, err := h.ledger.GetRoute(ctx, paymentID)
	if err != nil {
		h.logFailure(ctx, "route read failed", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"steps": steps})
}

func (h *Handler) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	messageID, err := id.ParseMessageID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	details, err := h.ledger.GetMessage(ctx, messageID)
	if err != nil {
		h.logFailure(ctx, "message read failed", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	paymentID, err := id.ParsePaymentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	payment, err := h.ledger.GetPayment(ctx, paymentID)
	if err != nil {
		h.logFailure(ctx, "payment read failed", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, payment)
}

func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err.Error())
		return
	}
	h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err.Error())
}

func aggregateParams(r *http.Request) (models.AggregateKind, uuid.UUID, error) {
	kind, ok := models.ParseAggregateKind(chi.URLParam(r, "kind"))
	if !ok {
		return "", uuid.Nil, dErrors.New(dErrors.CodeValidation, "aggregate kind must be message or payment")
	}
	aggregateID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || aggregateID == uuid.Nil {
		return "", uuid.Nil, dErrors.New(dErrors.CodeValidation, "aggregate id is not a valid id")
	}
	return kind, aggregateID, nil
}
