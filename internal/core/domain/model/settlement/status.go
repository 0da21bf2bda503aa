package settlement

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the settlement lifecycle.
//
//	Sent ──┬──> Agreed ──────────┐
//	       ├──> AdjustRequested ─┼──> Paid
//	       └─────────────────────┘
//	AdjustRequested ──> Sent (resend)
type Status int

const (
	Unknown Status = iota
	Sent
	Agreed
	AdjustRequested
	Paid
)

var statusNames = map[Status]string{
	Unknown:         "UNKNOWN",
	Sent:            "SENT",
	Agreed:          "AGREED",
	AdjustRequested: "ADJUST_REQUESTED",
	Paid:            "PAID",
}

var transitions = map[Status][]Status{
	Sent:            {Agreed, AdjustRequested, Paid},
	Agreed:          {Paid},
	AdjustRequested: {Paid, Sent},
	Paid:            nil,
}

func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("settlement status " + s)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidError("settlement status " + s.String())
	}
	return nil
}

func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
