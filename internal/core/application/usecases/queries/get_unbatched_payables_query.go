package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetUnbatchedPayablesQueryIsNotConstructed = errors.New(
		"GetUnbatchedPayablesQuery must be created via NewGetUnbatchedPayablesQuery constructor",
	)
)

// GetUnbatchedPayablesQuery previews what the next settlement would contain.
type GetUnbatchedPayablesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUnbatchedPayablesQuery() GetUnbatchedPayablesQuery {
	return GetUnbatchedPayablesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUnbatchedPayablesQuery) Validate() error {
	return q.guard.Validate(ErrGetUnbatchedPayablesQueryIsNotConstructed)
}

// UnbatchedPayableView is one order the printer is owed for but has not been settled.
type UnbatchedPayableView struct {
	OrderID          kernel.UUID `json:"orderId"`
	Status           string      `json:"status"`
	Email            string      `json:"email"`
	PayableCents     int64       `json:"payableCents"`
	Payable          string      `json:"payable"`
	BaseFeeDefaulted bool        `json:"baseFeeDefaulted"`
}

// GetUnbatchedPayablesQueryResponse carries the rows and the total owed.
type GetUnbatchedPayablesQueryResponse struct {
	Orders     []UnbatchedPayableView `json:"orders"`
	TotalCents int64                  `json:"totalCents"`
	Total      string                 `json:"total"`
}
