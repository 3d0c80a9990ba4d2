// Package domain defines the typed identifiers shared across the ledger.
//
// Every aggregate and reference entity gets its own UUID-backed type so the
// compiler rejects cross-type assignment (a PaymentID can never be passed
// where a MessageID is expected). Parse helpers enforce the invariant that
// IDs must be valid, non-empty, non-nil UUIDs at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "remit/pkg/domain-errors"
)

type (
	// MessageID identifies a payment-instruction batch aggregate.
	MessageID uuid.UUID
	// PaymentID identifies a single payment aggregate.
	PaymentID uuid.UUID
	// InstitutionID identifies a financial institution reference record.
	InstitutionID uuid.UUID
	// PartyID identifies a debtor/creditor party reference record.
	PartyID uuid.UUID
	// EventID identifies a single transition event record.
	EventID uuid.UUID
)

func (id MessageID) String() string     { return uuid.UUID(id).String() }
func (id PaymentID) String() string     { return uuid.UUID(id).String() }
func (id InstitutionID) String() string { return uuid.UUID(id).String() }
func (id PartyID) String() string       { return uuid.UUID(id).String() }
func (id EventID) String() string       { return uuid.UUID(id).String() }

func (id MessageID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id PaymentID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id InstitutionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id PartyID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }

// The defined types do not inherit uuid.UUID's marshaling, so each implements
// encoding.TextMarshaler/TextUnmarshaler to keep the canonical string form on
// the wire.

func (id MessageID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id PaymentID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id InstitutionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id PartyID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id EventID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }

func (id *MessageID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PaymentID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *InstitutionID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PartyID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *EventID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }

// ParseMessageID validates and parses a message ID from its string form.
func ParseMessageID(s string) (MessageID, error) {
	u, err := parseUUID(s, "message id")
	return MessageID(u), err
}

// ParsePaymentID validates and parses a payment ID from its string form.
func ParsePaymentID(s string) (PaymentID, error) {
	u, err := parseUUID(s, "payment id")
	return PaymentID(u), err
}

// ParseInstitutionID validates and parses an institution ID from its string form.
func ParseInstitutionID(s string) (InstitutionID, error) {
	u, err := parseUUID(s, "institution id")
	return InstitutionID(u), err
}

// ParsePartyID validates and parses a party ID from its string form.
func ParsePartyID(s string) (PartyID, error) {
	u, err := parseUUID(s, "party id")
	return PartyID(u), err
}

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is not a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" must not be the nil UUID")
	}
	return u, nil
}
