package settlement

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// BreakdownLine is one item's contribution to a payable amount.
type BreakdownLine struct {
	Description    string `json:"description,omitempty"`
	Qty            int    `json:"qty"`
	BlankCostCents int64  `json:"blankCostCents"`
	PrintCostCents int64  `json:"printCostCents"`
	LineCents      int64  `json:"lineCents"`
}

// Breakdown is the frozen calculation detail kept with each link for audits and disputes.
type Breakdown struct {
	BaseFeeCents     int64           `json:"baseFeeCents"`
	BaseFeeDefaulted bool            `json:"baseFeeDefaulted"`
	Lines            []BreakdownLine `json:"lines"`
	AmountCents      int64           `json:"amountCents"`
}

// Link ties one order to a settlement with its frozen amount.
type Link struct {
	orderID     kernel.UUID
	amountCents int64
	breakdown   Breakdown
}

func NewLink(orderID kernel.UUID, amountCents int64, breakdown Breakdown) (Link, error) {
	if err := orderID.Validate(); err != nil {
		return Link{}, err
	}
	return Link{orderID: orderID, amountCents: amountCents, breakdown: breakdown}, nil
}

func (l Link) OrderID() kernel.UUID {
	return l.orderID
}

func (l Link) AmountCents() int64 {
	return l.amountCents
}

func (l Link) Breakdown() Breakdown {
	lines := append([]BreakdownLine(nil), l.breakdown.Lines...)
	b := l.breakdown
	b.Lines = lines
	return b
}
