package models

import (
	"regexp"
	"time"

	refmodels "remit/internal/refdata/models"
	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Payment is the aggregate root for a single payment instruction.
//
// Invariants:
//   - PaymentRef is a globally unique idempotency key
//   - AmountMinor is positive and expressed in the currency's minor units
//   - DebtorSnapshot/CreditorSnapshot are write-once copies taken at
//     instruction time; they are never re-derived from live party data
//   - DebtorID/CreditorID are weak references for analytics only and carry no
//     authority over the snapshots
//   - route steps are append-only with contiguous step_no starting at 1
type Payment struct {
	ID                 id.PaymentID            `json:"id"`
	MessageID          id.MessageID            `json:"message_id"`
	PaymentRef         string                  `json:"payment_ref"`
	Scheme             string                  `json:"scheme"`
	AmountMinor        int64                   `json:"amount_minor"`
	Currency           string                  `json:"currency"`
	CurrentState       State                   `json:"current_state"`
	LastStateChangedAt time.Time               `json:"last_state_changed_at"`
	DebtorSnapshot     refmodels.PartySnapshot `json:"debtor_snapshot"`
	CreditorSnapshot   refmodels.PartySnapshot `json:"creditor_snapshot"`
	DebtorID           *id.PartyID             `json:"debtor_id,omitempty"`
	CreditorID         *id.PartyID             `json:"creditor_id,omitempty"`
	RouteSummary       Metadata                `json:"route_summary,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
}

func NewPayment(
	paymentID id.PaymentID,
	messageID id.MessageID,
	paymentRef string,
	scheme string,
	amountMinor int64,
	currency string,
	debtor refmodels.PartySnapshot,
	creditor refmodels.PartySnapshot,
	now time.Time,
) (*Payment, error) {
	if paymentRef == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "payment_ref cannot be empty")
	}
	if len(paymentRef) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "payment_ref must be 128 characters or less")
	}
	if messageID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "payment requires a parent message")
	}
	if scheme == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "scheme cannot be empty")
	}
	if amountMinor <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "amount must be positive")
	}
	if !currencyPattern.MatchString(currency) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "currency must be an ISO-4217 alpha-3 code")
	}
	if debtor.DisplayName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "debtor snapshot is required")
	}
	if creditor.DisplayName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "creditor snapshot is required")
	}
	return &Payment{
		ID:                 paymentID,
		MessageID:          messageID,
		PaymentRef:         paymentRef,
		Scheme:             scheme,
		AmountMinor:        amountMinor,
		Currency:           currency,
		CurrentState:       StateReceived,
		LastStateChangedAt: now,
		DebtorSnapshot:     debtor,
		CreditorSnapshot:   creditor,
		CreatedAt:          now,
	}, nil
}
