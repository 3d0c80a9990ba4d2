package models

import (
	"regexp"
	"time"

	id "remit/pkg/domain"
	dErrors "remit/pkg/domain-errors"
)

var (
	bicPattern     = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	leiPattern     = regexp.MustCompile(`^[A-Z0-9]{18}[0-9]{2}$`)
	countryPattern = regexp.MustCompile(`^[A-Z]{2}$`)
)

// Institution is reference data for a financial institution. Mutated
// out-of-band by onboarding; payments never hold live references to it, only
// snapshots taken at instruction time.
//
// Invariants:
//   - LegalName is non-empty and at most 256 characters
//   - BIC and LEI, when present, match their ISO formats and are globally unique
//   - CountryCode is an ISO-3166 alpha-2 code
type Institution struct {
	ID          id.InstitutionID `json:"id"`
	LegalName   string           `json:"legal_name"`
	BIC         string           `json:"bic,omitempty"`
	LEI         string           `json:"lei,omitempty"`
	CountryCode string           `json:"country_code"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func NewInstitution(instID id.InstitutionID, legalName, bic, lei, countryCode string, now time.Time) (*Institution, error) {
	if legalName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "institution legal_name cannot be empty")
	}
	if len(legalName) > 256 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "institution legal_name must be 256 characters or less")
	}
	if bic != "" && !bicPattern.MatchString(bic) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "institution bic is not a valid BIC")
	}
	if lei != "" && !leiPattern.MatchString(lei) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "institution lei is not a valid LEI")
	}
	if !countryPattern.MatchString(countryCode) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "institution country_code must be an ISO-3166 alpha-2 code")
	}
	return &Institution{
		ID:          instID,
		LegalName:   legalName,
		BIC:         bic,
		LEI:         lei,
		CountryCode: countryCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
