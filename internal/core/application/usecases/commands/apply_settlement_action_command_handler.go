package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
)

// ApplySettlementActionCommandHandler runs the settlement status machine.
//
// Every accepted action appends a PrinterAction audit row. PAID_IN_FULL also marks every
// linked order SETTLED in the same transaction. Clicking the link for the status the
// settlement already has is answered as success without a new audit row.
type ApplySettlementActionCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewApplySettlementActionCommandHandler(
	uowFactory UoWFactory,
	logger *slog.Logger,
) ApplySettlementActionCommandHandler {
	return ApplySettlementActionCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "settlement-status"),
	}
}

func (h *ApplySettlementActionCommandHandler) Handle(
	ctx context.Context,
	cmd ApplySettlementActionCommand,
) (*settlement.Settlement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	target, err := cmd.Action().Target()
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

	settlementRepo := uow.SettlementRepository()
	batch, err := settlementRepo.GetForUpdate(ctx, cmd.SettlementID())
	if err != nil {
		return nil, err
	}

	if batch.Status() == target {
		return batch, nil
	}

	now := time.Now().UTC()
	audit, err := batch.Apply(cmd.Action(), kernel.NewUUID(), now)
	if err != nil {
		return nil, err
	}

	if err = settlementRepo.UpdateStatus(ctx, batch); err != nil {
		return nil, err
	}

	if err = uow.PrinterActionRepository().Append(ctx, audit); err != nil {
		return nil, err
	}

	if batch.ShouldSettleOrders() {
		orderRepo := uow.OrderRepository()
		orders, getErr := orderRepo.GetManyForUpdate(ctx, batch.OrderIDs())
		if getErr != nil {
			return nil, getErr
		}
		for _, o := range orders {
			if err = o.MarkSettled(now); err != nil {
				return nil, err
			}
			if err = orderRepo.Update(ctx, o); err != nil {
				return nil, err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "settlement action applied",
		"settlement_id", batch.ID().String(),
		"action", string(cmd.Action()),
		"status", batch.Status().String(),
	)
	return batch, nil
}
