package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/money"
)

type unbatchedOrderReader interface {
	ListUnbatchedBillable(ctx context.Context, limit int) ([]*order.Order, error)
}

// GetUnbatchedPayablesQueryHandler prices unbatched orders with the same calculator the
// batcher uses, so the preview total matches the settlement that would be created.
type GetUnbatchedPayablesQueryHandler struct {
	orders     unbatchedOrderReader
	calculator services.PayableCalculator
}

func NewGetUnbatchedPayablesQueryHandler(
	orders unbatchedOrderReader,
	calculator services.PayableCalculator,
) GetUnbatchedPayablesQueryHandler {
	return GetUnbatchedPayablesQueryHandler{orders: orders, calculator: calculator}
}

func (h GetUnbatchedPayablesQueryHandler) Handle(
	ctx context.Context,
	query GetUnbatchedPayablesQuery,
) (GetUnbatchedPayablesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUnbatchedPayablesQueryResponse{}, err
	}

	orders, err := h.orders.ListUnbatchedBillable(ctx, 0)
	if err != nil {
		return GetUnbatchedPayablesQueryResponse{}, err
	}

	response := GetUnbatchedPayablesQueryResponse{Orders: make([]UnbatchedPayableView, 0, len(orders))}
	for _, o := range orders {
		breakdown := h.calculator.Breakdown(o)
		response.Orders = append(response.Orders, UnbatchedPayableView{
			OrderID:          o.ID(),
			Status:           o.Status().String(),
			Email:            o.Email().String(),
			PayableCents:     breakdown.AmountCents,
			Payable:          money.FormatCents(breakdown.AmountCents),
			BaseFeeDefaulted: breakdown.BaseFeeDefaulted,
		})
	}
	response.TotalCents = h.calculator.Total(orders)
	response.Total = money.FormatCents(response.TotalCents)

	return response, nil
}
