package service

import (
	"context"
	"errors"

	"remit/internal/ledger/models"
	refmodels "remit/internal/refdata/models"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
	"remit/pkg/platform/sentinel"
	"remit/pkg/requestcontext"
)

// RouteStepRequest appends one hop to a payment's routing chain.
type RouteStepRequest struct {
	PaymentID   id.PaymentID
	Role        models.RouteRole
	Institution refmodels.InstitutionSnapshot
	Metadata    models.Metadata
}

// AppendRouteStep records the next hop in the payment's route. Step numbers
// are assigned by the store under the per-payment lock, so concurrent appends
// still produce a contiguous 1..N chain. Corrections are appended as new
// steps with corrective metadata; existing steps are never rewritten.
func (s *Service) AppendRouteStep(ctx context.Context, req RouteStepRequest) (models.RouteStep, error) {
	if req.PaymentID.IsNil() {
		return models.RouteStep{}, dErrors.New(dErrors.CodeValidation, "payment id is required")
	}
	if _, ok := models.ParseRouteRole(string(req.Role)); !ok {
		return models.RouteStep{}, dErrors.New(dErrors.CodeValidation, "unknown route role")
	}
	if req.Institution.LegalName == "" {
		return models.RouteStep{}, dErrors.New(dErrors.CodeValidation, "institution legal_name is required")
	}
	if req.Institution.CountryCode == "" {
		return models.RouteStep{}, dErrors.New(dErrors.CodeValidation, "institution country_code is required")
	}

	now := requestcontext.Now(ctx).UTC()
	inst := req.Institution
	if inst.TakenAt.IsZero() {
		inst.TakenAt = now
	}

	step, err := s.store.AppendRouteStep(ctx, models.RouteStep{
		PaymentID:   req.PaymentID,
		Role:        req.Role,
		Institution: inst,
		Metadata:    req.Metadata.Copy(),
		RecordedAt:  now,
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.RouteStep{}, dErrors.Newf(dErrors.CodeNotFound, "payment %s not found", req.PaymentID)
		}
		return models.RouteStep{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to append route step")
	}

	if s.metrics != nil {
		s.metrics.IncrementRouteStep()
	}
	s.logger.InfoContext(ctx, "route step appended",
		"payment_id", req.PaymentID,
		"step_no", step.StepNo,
		"role", step.Role,
	)
	return step, nil
}

// GetRoute returns the payment's routing chain ordered by step_no.
func (s *Service) GetRoute(ctx context.Context, paymentID id.PaymentID) ([]models.RouteStep, error) {
	if paymentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "payment id is required")
	}
	if _, err := s.store.FindPayment(ctx, paymentID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "payment %s not found", paymentID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load payment")
	}
	steps, err := s.store.ListRouteSteps(ctx, paymentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load route")
	}
	return steps, nil
}
