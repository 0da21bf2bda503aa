package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// settlementCreator is satisfied by *CreateSettlementCommandHandler.
type settlementCreator interface {
	Handle(ctx context.Context, cmd CreateSettlementCommand) (CreateSettlementResult, error)
}

// BatchUnbatchedOrdersCommandHandler selects billable orders and hands them to the batcher.
// Selection happens without locks; the batcher's row locks decide which orders end up in
// the settlement, so overlapping runs cannot double-batch.
type BatchUnbatchedOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	creator    settlementCreator
}

func NewBatchUnbatchedOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	creator settlementCreator,
) BatchUnbatchedOrdersCommandHandler {
	return BatchUnbatchedOrdersCommandHandler{
		uowFactory: uowFactory,
		creator:    creator,
	}
}

// Handle returns a zero result when there is nothing to batch.
func (h *BatchUnbatchedOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd BatchUnbatchedOrdersCommand,
) (CreateSettlementResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateSettlementResult{}, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().ListUnbatchedBillable(ctx, cmd.Limit())
	if err != nil {
		return CreateSettlementResult{}, err
	}
	if len(orders) == 0 {
		return CreateSettlementResult{}, nil
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}

	create, err := NewCreateSettlementCommand(ids, cmd.Note())
	if err != nil {
		return CreateSettlementResult{}, err
	}

	result, err := h.creator.Handle(ctx, create)
	if errors.Is(err, ErrNothingToSettle) {
		return CreateSettlementResult{}, nil
	}
	return result, err
}
