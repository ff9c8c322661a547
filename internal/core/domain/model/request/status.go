package request

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery request.
//
// State transitions:
//
//	Pending ──> Accepted ──> PickedUp ──> InTransit ──> Delivered
//	   │           │
//	   └───────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Once the package is picked up the request can no
// longer be cancelled.
type Status int

const (
	// Unknown is the zero value and catches uninitialized statuses.
	Unknown Status = iota
	Pending
	Accepted
	PickedUp
	InTransit
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Accepted:  "accepted",
	PickedUp:  "picked_up",
	InTransit: "in_transit",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

// transitions is the complete edge list of the lifecycle graph.
var transitions = map[Status][]Status{
	Pending:   {Accepted, Cancelled},
	Accepted:  {PickedUp, Cancelled},
	PickedUp:  {InTransit},
	InTransit: {Delivered},
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Accepted, PickedUp, InTransit, Delivered, Cancelled}
}

// ParseStatus maps a wire name such as "picked_up" to its Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for st, n := range statusNames {
		if n == name {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate rejects Unknown and any value outside the enumeration.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// RequiresDriver reports whether a request in status s must carry an assigned driver.
// The relation is exact: a driver is assigned if and only if RequiresDriver is true.
func (s Status) RequiresDriver() bool {
	switch s { //nolint:exhaustive // remaining statuses carry no driver
	case Accepted, PickedUp, InTransit, Delivered:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether s -> target is an edge of the lifecycle graph.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError unless s -> target is an edge.
// An invalid target is reported as a validation error instead.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(s, target)
	}
	return nil
}

// ValidateDriverPresence checks the status/driver invariant for a persisted or restored request.
func (s Status) ValidateDriverPresence(hasDriver bool) error {
	if hasDriver && !s.RequiresDriver() {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver_id", fmt.Errorf("%s request cannot have a driver", s))
	}
	if !hasDriver && s.RequiresDriver() {
		return errs.NewValueIsRequiredErrorWithCause(
			"driver_id", fmt.Errorf("%s request must have a driver", s))
	}
	return nil
}
