package models

import "time"

// Snapshots are immutable point-in-time copies of reference data embedded
// into payments at instruction time. They are never re-derived from live
// Institution/Party rows, so later reference-data edits cannot retroactively
// corrupt the audit trail.

// InstitutionSnapshot is the audit copy of an institution.
type InstitutionSnapshot struct {
	LegalName   string    `json:"legal_name"`
	BIC         string    `json:"bic,omitempty"`
	LEI         string    `json:"lei,omitempty"`
	CountryCode string    `json:"country_code"`
	TakenAt     time.Time `json:"taken_at"`
}

// PartySnapshot is the audit copy of a debtor or creditor as instructed.
type PartySnapshot struct {
	DisplayName string               `json:"display_name"`
	PartyType   PartyType            `json:"party_type,omitempty"`
	Institution *InstitutionSnapshot `json:"institution,omitempty"`
	Identifiers []Identifier         `json:"identifiers,omitempty"`
	TakenAt     time.Time            `json:"taken_at"`
}

// SnapshotInstitution produces the immutable copy of an institution for
// embedding into a payment or route step.
func SnapshotInstitution(inst *Institution, at time.Time) InstitutionSnapshot {
	return InstitutionSnapshot{
		LegalName:   inst.LegalName,
		BIC:         inst.BIC,
		LEI:         inst.LEI,
		CountryCode: inst.CountryCode,
		TakenAt:     at,
	}
}

// SnapshotParty produces the immutable copy of a party. The institution
// argument may be nil when the party has no institution reference.
func SnapshotParty(p *Party, inst *Institution, at time.Time) PartySnapshot {
	snap := PartySnapshot{
		DisplayName: p.DisplayName,
		PartyType:   p.Type,
		TakenAt:     at,
	}
	if inst != nil {
		i := SnapshotInstitution(inst, at)
		snap.Institution = &i
	}
	if len(p.Identifiers) > 0 {
		snap.Identifiers = make([]Identifier, len(p.Identifiers))
		copy(snap.Identifiers, p.Identifiers)
	}
	return snap
}
