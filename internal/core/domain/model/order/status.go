package order

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the production and shipping lifecycle of an order.
//
// State transitions:
//
//	Paid ──> LabelPurchased ──> ReceivedByPrinter ──> Shipped ──> Delivered
//	  │            │                    │                │
//	  └────────────┴────────────────────┴────────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Paid
	LabelPurchased
	ReceivedByPrinter
	Shipped
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:           "UNKNOWN",
	Paid:              "PAID",
	LabelPurchased:    "LABEL_PURCHASED",
	ReceivedByPrinter: "RECEIVED_BY_PRINTER",
	Shipped:           "SHIPPED",
	Delivered:         "DELIVERED",
	Cancelled:         "CANCELLED",
}

// transitions is the complete table of allowed moves. Anything absent is rejected.
var transitions = map[Status][]Status{
	Paid:              {LabelPurchased, Cancelled},
	LabelPurchased:    {ReceivedByPrinter, Cancelled},
	ReceivedByPrinter: {Shipped, Cancelled},
	Shipped:           {Delivered, Cancelled},
	Delivered:         nil,
	Cancelled:         nil,
}

// ParseStatus converts the wire name (e.g. "SHIPPED") into a Status.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("status " + s)
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Paid, LabelPurchased, ReceivedByPrinter, Shipped, Delivered, Cancelled}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidError("status " + s.String())
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the move is in the transition table.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewTransitionIsInvalidError("order", s.String(), target.String())
	}
	return target, nil
}

// BillableStatuses lists the statuses in which the printer has done payable work:
// a label was purchased and the order was not cancelled.
func BillableStatuses() []Status {
	return []Status{LabelPurchased, ReceivedByPrinter, Shipped, Delivered}
}

// IsBillable reports whether s is one of BillableStatuses.
func (s Status) IsBillable() bool {
	return s >= LabelPurchased && s <= Delivered
}
