package models

import (
	"time"

	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
)

// PartyType classifies the role a party can play on payments.
type PartyType string

const (
	PartyDebtor       PartyType = "DEBTOR"
	PartyCreditor     PartyType = "CREDITOR"
	PartyIntermediary PartyType = "INTERMEDIARY"
	PartyBoth         PartyType = "BOTH"
)

// ParsePartyType maps the wire form to a PartyType.
func ParsePartyType(s string) (PartyType, bool) {
	switch PartyType(s) {
	case PartyDebtor, PartyCreditor, PartyIntermediary, PartyBoth:
		return PartyType(s), true
	}
	return "", false
}

// Identifier is one external identifier attached to a party. The (party,
// type, value) triple is unique.
type Identifier struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Scheme string `json:"scheme,omitempty"`
}

// Party is reference data for a debtor, creditor or intermediary. Like
// Institution it is mutated out-of-band and only ever embedded into payments
// as a point-in-time snapshot.
type Party struct {
	ID            id.PartyID        `json:"id"`
	Type          PartyType         `json:"party_type"`
	DisplayName   string            `json:"display_name"`
	InstitutionID *id.InstitutionID `json:"institution_id,omitempty"`
	Email         string            `json:"email,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	Identifiers   []Identifier      `json:"identifiers,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func NewParty(partyID id.PartyID, partyType PartyType, displayName string, now time.Time) (*Party, error) {
	if _, ok := ParsePartyType(string(partyType)); !ok {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "party_type must be one of DEBTOR, CREDITOR, INTERMEDIARY, BOTH")
	}
	if displayName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "party display_name cannot be empty")
	}
	if len(displayName) > 256 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "party display_name must be 256 characters or less")
	}
	return &Party{
		ID:          partyID,
		Type:        partyType,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// AddIdentifier appends an identifier, enforcing (type, value) uniqueness
// within the party.
func (p *Party) AddIdentifier(ident Identifier, now time.Time) error {
	if ident.Type == "" || ident.Value == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "identifier type and value are required")
	}
	for _, existing := range p.Identifiers {
		if existing.Type == ident.Type && existing.Value == ident.Value {
			return dErrors.New(dErrors.CodeConflict, "identifier already present on party")
		}
	}
	p.Identifiers = append(p.Identifiers, ident)
	p.UpdatedAt = now
	return nil
}
