package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrResendSettlementCommandIsNotConstructed = errors.New(
	"ResendSettlementCommand must be created via NewResendSettlementCommand constructor",
)

// ResendSettlementCommand puts an ADJUST_REQUESTED settlement back in front of the printer.
type ResendSettlementCommand struct { //nolint:recvcheck //using for validation
	settlementID kernel.UUID

	guard guard.ConstructorGuard
}

func NewResendSettlementCommand(settlementID kernel.UUID) (ResendSettlementCommand, error) {
	if err := settlementID.Validate(); err != nil {
		return ResendSettlementCommand{}, err
	}

	return ResendSettlementCommand{
		settlementID: settlementID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ResendSettlementCommand) Validate() error {
	return c.guard.Validate(ErrResendSettlementCommandIsNotConstructed)
}

func (c ResendSettlementCommand) SettlementID() kernel.UUID {
	return c.settlementID
}
