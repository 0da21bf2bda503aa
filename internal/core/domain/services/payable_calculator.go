package services

import (
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
)

// DefaultBasePrinterFeeCents is applied when an order carries no explicit base printer fee.
const DefaultBasePrinterFeeCents int64 = 500

// PayableCalculator computes the amount owed to the printer for one order:
//
//	payable = base_printer_fee_cents (fallback when absent) + Σ (blank + print) × qty
//
// It is pure: integer cents, no rounding, and zero or negative costs pass through unchanged.
// Settlement creation and the unbatched-total view must both go through it so displayed
// totals never diverge from committed ones.
type PayableCalculator struct {
	defaultBaseFeeCents int64
}

// NewPayableCalculator builds a calculator with the given fallback fee.
func NewPayableCalculator(defaultBaseFeeCents int64) PayableCalculator {
	return PayableCalculator{defaultBaseFeeCents: defaultBaseFeeCents}
}

// NewDefaultPayableCalculator uses DefaultBasePrinterFeeCents as the fallback.
func NewDefaultPayableCalculator() PayableCalculator {
	return NewPayableCalculator(DefaultBasePrinterFeeCents)
}

// Payable returns the amount owed for o.
func (c PayableCalculator) Payable(o *order.Order) int64 {
	return c.Breakdown(o).AmountCents
}

// Breakdown returns the amount together with the per-line detail that gets frozen
// into the settlement link.
func (c PayableCalculator) Breakdown(o *order.Order) settlement.Breakdown {
	b := settlement.Breakdown{BaseFeeCents: c.defaultBaseFeeCents, BaseFeeDefaulted: true}
	if fee := o.BasePrinterFeeCents(); fee != nil {
		b.BaseFeeCents = *fee
		b.BaseFeeDefaulted = false
	}

	items := o.Items()
	b.Lines = make([]settlement.BreakdownLine, 0, len(items))
	b.AmountCents = b.BaseFeeCents
	for _, item := range items {
		line := settlement.BreakdownLine{
			Description:    item.Description(),
			Qty:            item.Qty(),
			BlankCostCents: item.BlankCostCentsSnapshot(),
			PrintCostCents: item.PrintCostCentsSnapshot(),
			LineCents:      item.LineCostCents(),
		}
		b.Lines = append(b.Lines, line)
		b.AmountCents += line.LineCents
	}

	return b
}

// Total sums Payable over orders.
func (c PayableCalculator) Total(orders []*order.Order) int64 {
	var total int64
	for _, o := range orders {
		total += c.Payable(o)
	}
	return total
}
