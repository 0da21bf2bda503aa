// Package queries contains read-only use cases. Handlers read straight from the database
// with raw SQL and return flat views; they never load or mutate aggregates.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery reads one order with its item snapshots.
//
// Example:
//
//	query, err := NewGetOrderQuery(id)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderView is the order as returned by the read API.
type OrderView struct {
	ID                   kernel.UUID `json:"id"`
	Status               string      `json:"status"`
	Email                string      `json:"email"`
	TrackingNumber       *string     `json:"trackingNumber"`
	Carrier              *string     `json:"carrier"`
	BasePrinterFeeCents  *int64      `json:"basePrinterFeeCents"`
	PrinterPayableStatus string      `json:"printerPayableStatus"`
	SubtotalCents        int64       `json:"subtotalCents"`
	ShippingCents        int64       `json:"shippingCents"`
	TaxCents             int64       `json:"taxCents"`
	TotalCents           int64       `json:"totalCents"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// OrderItemView is one item snapshot.
type OrderItemView struct {
	Description            string `json:"description"`
	Qty                    int    `json:"qty"`
	BlankCostCentsSnapshot int64  `json:"blankCostCentsSnapshot"`
	PrintCostCentsSnapshot int64  `json:"printCostCentsSnapshot"`
}

// GetOrderQueryResponse mirrors the {order, items} body of the read API.
type GetOrderQueryResponse struct {
	Order OrderView       `json:"order"`
	Items []OrderItemView `json:"items"`
}
