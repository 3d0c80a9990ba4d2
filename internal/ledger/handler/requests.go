package handler

import (
	"time"

	"remit/internal/ledger/models"
	"remit/internal/ledger/service"
	refmodels "remit/internal/refdata/models"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
)

// PartySnapshotPayload carries an inline party snapshot in an ingest request.
type PartySnapshotPayload struct {
	DisplayName string                 `json:"display_name"`
	PartyType   string                 `json:"party_type,omitempty"`
	Institution *InstitutionPayload    `json:"institution,omitempty"`
	Identifiers []refmodels.Identifier `json:"identifiers,omitempty"`
}

// InstitutionPayload carries an inline institution snapshot.
type InstitutionPayload struct {
	LegalName   string `json:"legal_name"`
	BIC         string `json:"bic,omitempty"`
	LEI         string `json:"lei,omitempty"`
	CountryCode string `json:"country_code"`
}

func (p InstitutionPayload) snapshot(at time.Time) refmodels.InstitutionSnapshot {
	return refmodels.InstitutionSnapshot{
		LegalName:   p.LegalName,
		BIC:         p.BIC,
		LEI:         p.LEI,
		CountryCode: p.CountryCode,
		TakenAt:     at,
	}
}

func (p PartySnapshotPayload) snapshot(at time.Time) refmodels.PartySnapshot {
	snap := refmodels.PartySnapshot{
		DisplayName: p.DisplayName,
		PartyType:   refmodels.PartyType(p.PartyType),
		TakenAt:     at,
	}
	if p.Institution != nil {
		snap.Institution = &refmodels.InstitutionSnapshot{
			LegalName:   p.Institution.LegalName,
			BIC:         p.Institution.BIC,
			LEI:         p.Institution.LEI,
			CountryCode: p.Institution.CountryCode,
			TakenAt:     at,
		}
	}
	if len(p.Identifiers) > 0 {
		snap.Identifiers = make([]refmodels.Identifier, len(p.Identifiers))
		copy(snap.Identifiers, p.Identifiers)
	}
	return snap
}

// IngestPaymentPayload is one payment instruction in an ingest request.
type IngestPaymentPayload struct {
	PaymentRef  string               `json:"payment_ref"`
	Scheme      string               `json:"scheme"`
	AmountMinor int64                `json:"amount_minor"`
	Currency    string               `json:"currency"`
	Debtor      PartySnapshotPayload `json:"debtor"`
	Creditor    PartySnapshotPayload `json:"creditor"`
	DebtorID    string               `json:"debtor_id,omitempty"`
	CreditorID  string               `json:"creditor_id,omitempty"`
}

// IngestRequest is the wire form of a payment-instruction batch.
type IngestRequest struct {
	ExternalRef  string                 `json:"external_ref"`
	SourceSystem string                 `json:"source_system"`
	Attributes   models.Metadata        `json:"attributes,omitempty"`
	Payments     []IngestPaymentPayload `json:"payments"`
}

// Validate checks the request shape. Domain invariants (amount, currency,
// snapshot completeness) are enforced again by the aggregate constructors.
func (r *IngestRequest) Validate() error {
	if r.ExternalRef == "" {
		return dErrors.New(dErrors.CodeValidation, "external_ref is required")
	}
	if r.SourceSystem == "" {
		return dErrors.New(dErrors.CodeValidation, "source_system is required")
	}
	if len(r.Payments) == 0 {
		return dErrors.New(dErrors.CodeValidation, "payments must not be empty")
	}
	for i, p := range r.Payments {
		if p.PaymentRef == "" {
			return dErrors.Newf(dErrors.CodeValidation, "payments[%d].payment_ref is required", i)
		}
		if p.DebtorID != "" {
			if _, err := id.ParsePartyID(p.DebtorID); err != nil {
				return dErrors.Newf(dErrors.CodeValidation, "payments[%d].debtor_id is not a valid id", i)
			}
		}
		if p.CreditorID != "" {
			if _, err := id.ParsePartyID(p.CreditorID); err != nil {
				return dErrors.Newf(dErrors.CodeValidation, "payments[%d].creditor_id is not a valid id", i)
			}
		}
	}
	return nil
}

func (r *IngestRequest) toService(at time.Time) service.IngestRequest {
	req := service.IngestRequest{
		ExternalRef:  r.ExternalRef,
		SourceSystem: r.SourceSystem,
		Attributes:   r.Attributes,
		Payments:     make([]service.IngestPayment, 0, len(r.Payments)),
	}
	for _, p := range r.Payments {
		in := service.IngestPayment{
			PaymentRef:  p.PaymentRef,
			Scheme:      p.Scheme,
			AmountMinor: p.AmountMinor,
			Currency:    p.Currency,
			Debtor:      p.Debtor.snapshot(at),
			Creditor:    p.Creditor.snapshot(at),
		}
		if p.DebtorID != "" {
			if parsed, err := id.ParsePartyID(p.DebtorID); err == nil {
				in.DebtorID = &parsed
			}
		}
		if p.CreditorID != "" {
			if parsed, err := id.ParsePartyID(p.CreditorID); err == nil {
				in.CreditorID = &parsed
			}
		}
		req.Payments = append(req.Payments, in)
	}
	return req
}

// TransitionRequest is the wire form of a lifecycle transition.
type TransitionRequest struct {
	ToState              string          `json:"to_state"`
	ExpectedCurrentState string          `json:"expected_current_state,omitempty"`
	Actor                ActorPayload    `json:"actor"`
	Metadata             models.Metadata `json:"metadata,omitempty"`
}

// ActorPayload identifies the transition requester.
type ActorPayload struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func (r *TransitionRequest) Validate() error {
	if _, ok := models.ParseState(r.ToState); !ok {
		return dErrors.New(dErrors.CodeValidation, "to_state is not a known state")
	}
	if r.ExpectedCurrentState != "" {
		if _, ok := models.ParseState(r.ExpectedCurrentState); !ok {
			return dErrors.New(dErrors.CodeValidation, "expected_current_state is not a known state")
		}
	}
	if r.Actor.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "actor.id is required")
	}
	switch models.ActorType(r.Actor.Type) {
	case models.ActorSystem, models.ActorService, models.ActorUser:
	default:
		return dErrors.New(dErrors.CodeValidation, "actor.type is not a known actor type")
	}
	return nil
}

// RouteStepRequest is the wire form of a route-step append.
type RouteStepRequest struct {
	Role        string             `json:"role"`
	Institution InstitutionPayload `json:"institution"`
	Metadata    models.Metadata    `json:"metadata,omitempty"`
}

func (r *RouteStepRequest) Validate() error {
	if _, ok := models.ParseRouteRole(r.Role); !ok {
		return dErrors.New(dErrors.CodeValidation, "role is not a known route role")
	}
	if r.Institution.LegalName == "" {
		return dErrors.New(dErrors.CodeValidation, "institution.legal_name is required")
	}
	if r.Institution.CountryCode == "" {
		return dErrors.New(dErrors.CodeValidation, "institution.country_code is required")
	}
	return nil
}
