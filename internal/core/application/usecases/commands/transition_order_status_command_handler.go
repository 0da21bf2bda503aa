package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/order"
)

// TransitionOrderStatusCommandHandler applies order lifecycle transitions.
//
// The order row is locked for the whole transaction so concurrent webhooks for the same
// order are serialized. Notifications are written to the outbox in the same transaction
// and keyed by (order, status, recipient), so a repeated webhook never emails twice.
// Delivery happens after commit and its failure never fails the transition.
type TransitionOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	composer   notifications.Composer
	flusher    NotificationFlusher
	logger     *slog.Logger
}

func NewTransitionOrderStatusCommandHandler(
	uowFactory UoWFactory,
	composer notifications.Composer,
	flusher NotificationFlusher,
	logger *slog.Logger,
) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		composer:   composer,
		flusher:    flusher,
		logger:     logger.With("component", "order-status"),
	}
}

// Handle returns the order as persisted.
func (h *TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	changed, err := aggregate.TransitionTo(cmd.Target(), cmd.Shipment(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	var keys []string
	if changed {
		keys, err = enqueue(ctx, uow.NotificationOutbox(), h.composer.OrderStatusChanged(aggregate)...)
		if err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	flush(ctx, h.flusher, h.logger, keys, "order_id", aggregate.ID().String(), "status", aggregate.Status().String())
	return aggregate, nil
}
