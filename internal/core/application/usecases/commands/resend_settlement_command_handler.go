package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
)

// ResendSettlementCommandHandler answers an adjustment request by sending the same
// settlement again. Amounts and links are frozen; only the status returns to SENT.
type ResendSettlementCommandHandler struct {
	uowFactory UoWFactory
	composer   notifications.Composer
	flusher    NotificationFlusher
	logger     *slog.Logger
}

func NewResendSettlementCommandHandler(
	uowFactory UoWFactory,
	composer notifications.Composer,
	flusher NotificationFlusher,
	logger *slog.Logger,
) ResendSettlementCommandHandler {
	return ResendSettlementCommandHandler{
		uowFactory: uowFactory,
		composer:   composer,
		flusher:    flusher,
		logger:     logger.With("component", "settlement-status"),
	}
}

func (h *ResendSettlementCommandHandler) Handle(
	ctx context.Context,
	cmd ResendSettlementCommand,
) (*settlement.Settlement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	audit, err := batch.Apply(settlement.ActionResent, kernel.NewUUID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = settlementRepo.UpdateStatus(ctx, batch); err != nil {
		return nil, err
	}

	actionRepo := uow.PrinterActionRepository()
	history, err := actionRepo.ListBySettlement(ctx, batch.ID())
	if err != nil {
		return nil, err
	}
	if err = actionRepo.Append(ctx, audit); err != nil {
		return nil, err
	}

	resends := 1
	for _, a := range history {
		if a.Action() == settlement.ActionResent {
			resends++
		}
	}

	keys, err := enqueue(ctx, uow.NotificationOutbox(), h.composer.SettlementResent(batch, resends))
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	flush(ctx, h.flusher, h.logger, keys, "settlement_id", batch.ID().String())
	return batch, nil
}
