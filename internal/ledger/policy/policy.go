// Package policy is the single authority for lifecycle transition legality.
//
// Every state change requested anywhere in the system is checked against the
// edge tables here; no caller carries its own transition rules. The tables
// are fixed at construction and the checks are pure, so the policy is safe to
// share across goroutines and trivial to test in isolation.
package policy

import "remit/internal/ledger/models"

type edge struct {
	from models.State
	to   models.State
}

// Policy holds the legal transition edges per aggregate kind, including the
// initial edges (from = StateNone).
type Policy struct {
	edges    map[models.AggregateKind]map[edge]struct{}
	terminal map[models.AggregateKind]map[models.State]struct{}
}

// New builds the fixed message and payment edge tables.
//
// Message: RECEIVED -> VALIDATED -> ENRICHED -> ROUTED ->
// {PARTIALLY_ACCEPTED, ACCEPTED} -> SENT_TO_SCHEME -> SETTLED, with
// REJECTED/FAILED reachable from every non-terminal state.
//
// Payment: RECEIVED -> VALIDATED -> PENDING_FUNDS -> ROUTED ->
// SENT_TO_SCHEME -> SETTLED, same rejection shape.
func New() *Policy {
	p := &Policy{
		edges: map[models.AggregateKind]map[edge]struct{}{
			models.KindMessage: {},
			models.KindPayment: {},
		},
		terminal: map[models.AggregateKind]map[models.State]struct{}{
			models.KindMessage: terminalSet(),
			models.KindPayment: terminalSet(),
		},
	}

	p.add(models.KindMessage,
		edge{models.StateNone, models.StateReceived},
		edge{models.StateReceived, models.StateValidated},
		edge{models.StateValidated, models.StateEnriched},
		edge{models.StateEnriched, models.StateRouted},
		edge{models.StateRouted, models.StatePartiallyAccepted},
		edge{models.StateRouted, models.StateAccepted},
		edge{models.StatePartiallyAccepted, models.StateSentToScheme},
		edge{models.StateAccepted, models.StateSentToScheme},
		edge{models.StateSentToScheme, models.StateSettled},
	)
	p.addRejectionEdges(models.KindMessage,
		models.StateReceived, models.StateValidated, models.StateEnriched,
		models.StateRouted, models.StatePartiallyAccepted, models.StateAccepted,
		models.StateSentToScheme,
	)

	p.add(models.KindPayment,
		edge{models.StateNone, models.StateReceived},
		edge{models.StateReceived, models.StateValidated},
		edge{models.StateValidated, models.StatePendingFunds},
		edge{models.StatePendingFunds, models.StateRouted},
		edge{models.StateRouted, models.StateSentToScheme},
		edge{models.StateSentToScheme, models.StateSettled},
	)
	p.addRejectionEdges(models.KindPayment,
		models.StateReceived, models.StateValidated, models.StatePendingFunds,
		models.StateRouted, models.StateSentToScheme,
	)

	return p
}

func terminalSet() map[models.State]struct{} {
	return map[models.State]struct{}{
		models.StateSettled:  {},
		models.StateRejected: {},
		models.StateFailed:   {},
	}
}

func (p *Policy) add(kind models.AggregateKind, edges ...edge) {
	for _, e := range edges {
		p.edges[kind][e] = struct{}{}
	}
}

func (p *Policy) addRejectionEdges(kind models.AggregateKind, from ...models.State) {
	for _, f := range from {
		p.edges[kind][edge{f, models.StateRejected}] = struct{}{}
		p.edges[kind][edge{f, models.StateFailed}] = struct{}{}
	}
}

// Allowed reports whether (from, to) is a legal edge for the aggregate kind.
// StateNone as from checks the initial edges.
func (p *Policy) Allowed(kind models.AggregateKind, from, to models.State) bool {
	edges, ok := p.edges[kind]
	if !ok {
		return false
	}
	_, ok = edges[edge{from, to}]
	return ok
}

// Initial reports whether to is a legal first state for the aggregate kind.
func (p *Policy) Initial(kind models.AggregateKind, to models.State) bool {
	return p.Allowed(kind, models.StateNone, to)
}

// Terminal reports whether the state admits no further transitions.
func (p *Policy) Terminal(kind models.AggregateKind, s models.State) bool {
	states, ok := p.terminal[kind]
	if !ok {
		return false
	}
	_, ok = states[s]
	return ok
}
