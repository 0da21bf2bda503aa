package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRegisterPaidOrderCommandIsNotConstructed = errors.New(
		"RegisterPaidOrderCommand must be created via NewRegisterPaidOrderCommand constructor",
	)
	ErrBasePrinterFeeIsNegative = errs.NewValueIsInvalidErrorWithCause(
		"basePrinterFeeCents", errors.New("must not be negative"),
	)
)

// PaidOrderItem is a line item snapshot as produced by checkout.
type PaidOrderItem struct {
	Description    string
	Qty            int
	BlankCostCents int64
	PrintCostCents int64
}

// RegisterPaidOrderCommand records an order that checkout has already charged.
//
// Example:
//
//	cmd, err := NewRegisterPaidOrderCommand(orderID, "buyer@example.com", totals, nil, []PaidOrderItem{
//	    {Description: "Tee", Qty: 2, BlankCostCents: 300, PrintCostCents: 200},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewRegisterPaidOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register order: %w", err)
//	}
type RegisterPaidOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	email               kernel.Email
	totals              order.Totals
	basePrinterFeeCents *int64
	items               []order.Item

	guard guard.ConstructorGuard
}

// NewRegisterPaidOrderCommand validates the order payload. A nil basePrinterFeeCents
// leaves the printer fee to the calculator's fallback.
func NewRegisterPaidOrderCommand(
	orderID kernel.UUID,
	email string,
	totals order.Totals,
	basePrinterFeeCents *int64,
	items []PaidOrderItem,
) (RegisterPaidOrderCommand, error) {
	command := RegisterPaidOrderCommand{
		totals: totals,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setEmail(email),
		command.setBasePrinterFee(basePrinterFeeCents),
		command.setItems(items),
	); err != nil {
		return RegisterPaidOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPaidOrderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPaidOrderCommandIsNotConstructed)
}

func (c RegisterPaidOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RegisterPaidOrderCommand) Email() kernel.Email {
	return c.email
}

func (c RegisterPaidOrderCommand) Totals() order.Totals {
	return c.totals
}

func (c RegisterPaidOrderCommand) BasePrinterFeeCents() *int64 {
	if c.basePrinterFeeCents == nil {
		return nil
	}
	v := *c.basePrinterFeeCents
	return &v
}

func (c RegisterPaidOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c *RegisterPaidOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RegisterPaidOrderCommand) setEmail(address string) error {
	email, err := kernel.NewEmail(address)
	if err != nil {
		return err
	}

	c.email = email
	return nil
}

func (c *RegisterPaidOrderCommand) setBasePrinterFee(fee *int64) error {
	if fee == nil {
		return nil
	}
	if *fee < 0 {
		return ErrBasePrinterFeeIsNegative
	}

	v := *fee
	c.basePrinterFeeCents = &v
	return nil
}

func (c *RegisterPaidOrderCommand) setItems(items []PaidOrderItem) error {
	if len(items) == 0 {
		return order.ErrOrderHasNoItems
	}

	converted := make([]order.Item, 0, len(items))
	for _, in := range items {
		item, err := order.NewItem(in.Description, in.Qty, in.BlankCostCents, in.PrintCostCents)
		if err != nil {
			return err
		}
		converted = append(converted, item)
	}

	c.items = converted
	return nil
}
