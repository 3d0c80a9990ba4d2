package models

import (
	"time"

	refmodels "remit/internal/refdata/models"
	id "remit/pkg/domain"
)

// RouteRole names the position an institution takes in a payment's routing
// chain.
type RouteRole string

const (
	RoleSenderBank    RouteRole = "SENDER_BANK"
	RoleCorrespondent RouteRole = "CORRESPONDENT"
	RoleIntermediary  RouteRole = "INTERMEDIARY"
	RoleReceiverBank  RouteRole = "RECEIVER_BANK"
)

// ParseRouteRole maps the wire form to a RouteRole.
func ParseRouteRole(s string) (RouteRole, bool) {
	switch RouteRole(s) {
	case RoleSenderBank, RoleCorrespondent, RoleIntermediary, RoleReceiverBank:
		return RouteRole(s), true
	}
	return "", false
}

// RouteStep is one hop in a payment's ordered intermediary chain. Steps are
// append-only; corrections are recorded as new steps with corrective
// metadata, never by rewriting history.
//
// StepNo values for a payment are contiguous 1..N in append order.
type RouteStep struct {
	PaymentID   id.PaymentID                  `json:"payment_id"`
	StepNo      int                           `json:"step_no"`
	Role        RouteRole                     `json:"role"`
	Institution refmodels.InstitutionSnapshot `json:"institution"`
	Metadata    Metadata                      `json:"metadata,omitempty"`
	RecordedAt  time.Time                     `json:"recorded_at"`
}
