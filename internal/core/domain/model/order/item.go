package order

import (
	"fulfillment/internal/pkg/errs"
)

// Item is an immutable line item snapshot. Costs are integer cents frozen at order time.
// Zero or negative costs are accepted as-is; only the quantity is validated.
type Item struct {
	description            string
	qty                    int
	blankCostCentsSnapshot int64
	printCostCentsSnapshot int64
}

// NewItem validates and builds a line item snapshot.
func NewItem(description string, qty int, blankCostCents, printCostCents int64) (Item, error) {
	if qty <= 0 {
		return Item{}, errs.NewValueIsOutOfRangeError("qty", qty, 1, "unbounded")
	}
	return Item{
		description:            description,
		qty:                    qty,
		blankCostCentsSnapshot: blankCostCents,
		printCostCentsSnapshot: printCostCents,
	}, nil
}

func (i Item) Description() string {
	return i.description
}

func (i Item) Qty() int {
	return i.qty
}

func (i Item) BlankCostCentsSnapshot() int64 {
	return i.blankCostCentsSnapshot
}

func (i Item) PrintCostCentsSnapshot() int64 {
	return i.printCostCentsSnapshot
}

// UnitCostCents is the per-unit printer cost (blank + print).
func (i Item) UnitCostCents() int64 {
	return i.blankCostCentsSnapshot + i.printCostCentsSnapshot
}

// LineCostCents is UnitCostCents multiplied by qty.
func (i Item) LineCostCents() int64 {
	return i.UnitCostCents() * int64(i.qty)
}
