package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand moves an order along its lifecycle, typically on a printer webhook.
// Tracking details are optional and only stored when non-empty.
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	target   order.Status
	shipment order.Shipment

	guard guard.ConstructorGuard
}

func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	shipment order.Shipment,
) (TransitionOrderStatusCommand, error) {
	command := TransitionOrderStatusCommand{
		shipment: order.Shipment{
			TrackingNumber: strings.TrimSpace(shipment.TrackingNumber),
			Carrier:        strings.TrimSpace(shipment.Carrier),
		},
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTarget(target),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return command, nil
}

func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

func (c TransitionOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c TransitionOrderStatusCommand) Shipment() order.Shipment {
	return c.shipment
}

func (c *TransitionOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
