package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// RegisterPaidOrderCommandHandler stores orders handed over by checkout.
// A second registration of the same id fails with errs.ErrObjectAlreadyExists.
type RegisterPaidOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRegisterPaidOrderCommandHandler(uowFactory OrderUoWFactory) RegisterPaidOrderCommandHandler {
	return RegisterPaidOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order in PAID status with an UNBATCHED payable and returns it.
func (h *RegisterPaidOrderCommandHandler) Handle(ctx context.Context, cmd RegisterPaidOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewPaidOrder(
		cmd.OrderID(),
		cmd.Email(),
		cmd.Totals(),
		cmd.BasePrinterFeeCents(),
		cmd.Items(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
