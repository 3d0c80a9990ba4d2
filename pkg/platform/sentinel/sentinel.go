package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about stored aggregates, not validation
// failures:
// - ErrNotFound: aggregate does not exist in the store
// - ErrAlreadyUsed: idempotency key (external_ref, payment_ref) already taken
// - ErrStateChanged: aggregate state no longer matches the expected from-state
// - ErrConflict: concurrent writer won a uniqueness or version race
// - ErrUnavailable: backing store temporarily unreachable
//
// For input validation use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyUsed  = errors.New("already used")
	ErrStateChanged = errors.New("state changed")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("unavailable")
)
