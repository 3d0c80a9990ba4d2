package models

// AggregateKind names the two aggregate types tracked by the ledger. Each has
// an independent state machine and event history.
type AggregateKind string

const (
	KindMessage AggregateKind = "message"
	KindPayment AggregateKind = "payment"
)

// ParseAggregateKind maps the wire form to an AggregateKind.
func ParseAggregateKind(s string) (AggregateKind, bool) {
	switch AggregateKind(s) {
	case KindMessage, KindPayment:
		return AggregateKind(s), true
	}
	return "", false
}

// State is a lifecycle state name. The zero value means "no state yet" and is
// only legal as the from-state of an aggregate's first transition.
type State string

// StateNone marks the origin of an aggregate's first transition.
const StateNone State = ""

const (
	StateReceived          State = "RECEIVED"
	StateValidated         State = "VALIDATED"
	StateEnriched          State = "ENRICHED"
	StatePendingFunds      State = "PENDING_FUNDS"
	StateRouted            State = "ROUTED"
	StatePartiallyAccepted State = "PARTIALLY_ACCEPTED"
	StateAccepted          State = "ACCEPTED"
	StateSentToScheme      State = "SENT_TO_SCHEME"
	StateSettled           State = "SETTLED"
	StateRejected          State = "REJECTED"
	StateFailed            State = "FAILED"
)

// ParseState maps the wire form to a State. StateNone is not parseable; it
// never appears on the wire as a target state.
func ParseState(s string) (State, bool) {
	switch State(s) {
	case StateReceived, StateValidated, StateEnriched, StatePendingFunds,
		StateRouted, StatePartiallyAccepted, StateAccepted,
		StateSentToScheme, StateSettled, StateRejected, StateFailed:
		return State(s), true
	}
	return "", false
}
