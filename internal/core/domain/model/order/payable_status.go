package order

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// PayableStatus tracks whether the printer has been paid for an order.
// It only advances: Unbatched -> Batched -> Settled.
type PayableStatus int

const (
	PayableUnknown PayableStatus = iota
	Unbatched
	Batched
	Settled
)

var payableNames = map[PayableStatus]string{
	PayableUnknown: "UNKNOWN",
	Unbatched:      "UNBATCHED",
	Batched:        "BATCHED",
	Settled:        "SETTLED",
}

func ParsePayableStatus(s string) (PayableStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range payableNames {
		if status != PayableUnknown && name == normalized {
			return status, nil
		}
	}
	return PayableUnknown, errs.NewValueIsInvalidError("printer payable status " + s)
}

func (p PayableStatus) String() string {
	if name, ok := payableNames[p]; ok {
		return name
	}
	return payableNames[PayableUnknown]
}

func (p PayableStatus) Validate() error {
	if p < Unbatched || p > Settled {
		return errs.NewValueIsInvalidError("printer payable status " + p.String())
	}
	return nil
}

// Batch moves Unbatched to Batched.
func (p PayableStatus) Batch() (PayableStatus, error) {
	if p != Unbatched {
		return PayableUnknown, errs.NewTransitionIsInvalidError("printer payable", p.String(), Batched.String())
	}
	return Batched, nil
}

// Settle moves Batched to Settled.
func (p PayableStatus) Settle() (PayableStatus, error) {
	if p != Batched {
		return PayableUnknown, errs.NewTransitionIsInvalidError("printer payable", p.String(), Settled.String())
	}
	return Settled, nil
}
