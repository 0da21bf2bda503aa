package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrApplySettlementActionCommandIsNotConstructed = errors.New(
		"ApplySettlementActionCommand must be created via NewApplySettlementActionCommand constructor",
	)
	ErrActionIsNotPrinterAction = errs.NewValueIsInvalidErrorWithCause(
		"action", errors.New("only AGREED, NEEDS_UPDATED and PAID_IN_FULL come from the printer"),
	)
)

// ApplySettlementActionCommand is a printer response to a settlement, usually a link click.
type ApplySettlementActionCommand struct { //nolint:recvcheck //using for validation
	settlementID kernel.UUID
	action       settlement.Action

	guard guard.ConstructorGuard
}

func NewApplySettlementActionCommand(
	settlementID kernel.UUID,
	action settlement.Action,
) (ApplySettlementActionCommand, error) {
	command := ApplySettlementActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSettlementID(settlementID),
		command.setAction(action),
	); err != nil {
		return ApplySettlementActionCommand{}, err
	}

	return command, nil
}

func (c ApplySettlementActionCommand) Validate() error {
	return c.guard.Validate(ErrApplySettlementActionCommandIsNotConstructed)
}

func (c ApplySettlementActionCommand) SettlementID() kernel.UUID {
	return c.settlementID
}

func (c ApplySettlementActionCommand) Action() settlement.Action {
	return c.action
}

func (c *ApplySettlementActionCommand) setSettlementID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.settlementID = id
	return nil
}

func (c *ApplySettlementActionCommand) setAction(action settlement.Action) error {
	switch action {
	case settlement.ActionAgreed, settlement.ActionNeedsUpdated, settlement.ActionPaidInFull:
		c.action = action
		return nil
	default:
		return ErrActionIsNotPrinterAction
	}
}
