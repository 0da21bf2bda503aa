package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// ErrNothingToSettle is returned when every requested order is already batched or settled.
var ErrNothingToSettle = fmt.Errorf("%w: no unbatched orders among the requested ids", errs.ErrTransitionIsInvalid)

// CreateSettlementResult reports the new settlement and the orders left out of it.
type CreateSettlementResult struct {
	Settlement *settlement.Settlement
	// Skipped holds requested orders that were no longer UNBATCHED.
	Skipped []kernel.UUID
}

// CreateSettlementCommandHandler is the settlement batcher.
//
// The settlement row, its links, the BATCHED payable marks and the printer notification
// are written in one transaction. Orders are locked before they are read, so a retried
// or concurrent call sees the BATCHED marks of the first one and skips those orders
// instead of batching them twice.
type CreateSettlementCommandHandler struct {
	uowFactory UoWFactory
	calculator services.PayableCalculator
	composer   notifications.Composer
	flusher    NotificationFlusher
	logger     *slog.Logger
}

func NewCreateSettlementCommandHandler(
	uowFactory UoWFactory,
	calculator services.PayableCalculator,
	composer notifications.Composer,
	flusher NotificationFlusher,
	logger *slog.Logger,
) CreateSettlementCommandHandler {
	return CreateSettlementCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		composer:   composer,
		flusher:    flusher,
		logger:     logger.With("component", "settlement-batcher"),
	}
}

func (h *CreateSettlementCommandHandler) Handle(
	ctx context.Context,
	cmd CreateSettlementCommand,
) (CreateSettlementResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateSettlementResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateSettlementResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetManyForUpdate(ctx, cmd.OrderIDs())
	if err != nil {
		return CreateSettlementResult{}, err
	}

	eligible := make([]*order.Order, 0, len(orders))
	var skipped []kernel.UUID
	for _, o := range orders {
		if o.PayableStatus() != order.Unbatched {
			skipped = append(skipped, o.ID())
			continue
		}
		eligible = append(eligible, o)
	}
	if len(eligible) == 0 {
		return CreateSettlementResult{}, ErrNothingToSettle
	}

	now := time.Now().UTC()
	links := make([]settlement.Link, 0, len(eligible))
	for _, o := range eligible {
		breakdown := h.calculator.Breakdown(o)
		link, linkErr := settlement.NewLink(o.ID(), breakdown.AmountCents, breakdown)
		if linkErr != nil {
			return CreateSettlementResult{}, linkErr
		}
		links = append(links, link)
	}

	batch, err := settlement.NewSettlement(kernel.NewUUID(), h.composer.PrinterEmail(), cmd.Note(), links, now)
	if err != nil {
		return CreateSettlementResult{}, err
	}

	if err = uow.SettlementRepository().Add(ctx, batch); err != nil {
		return CreateSettlementResult{}, err
	}

	for _, o := range eligible {
		if err = o.MarkBatched(now); err != nil {
			return CreateSettlementResult{}, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return CreateSettlementResult{}, err
		}
	}

	keys, err := enqueue(ctx, uow.NotificationOutbox(), h.composer.SettlementCreated(batch))
	if err != nil {
		return CreateSettlementResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateSettlementResult{}, err
	}

	h.logger.InfoContext(ctx, "settlement created",
		"settlement_id", batch.ID().String(),
		"orders", len(eligible),
		"skipped", len(skipped),
		"total_cents", batch.TotalCents(),
	)
	flush(ctx, h.flusher, h.logger, keys, "settlement_id", batch.ID().String())

	return CreateSettlementResult{Settlement: batch, Skipped: skipped}, nil
}
