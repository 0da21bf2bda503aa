package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateSettlementCommandIsNotConstructed = errors.New(
		"CreateSettlementCommand must be created via NewCreateSettlementCommand constructor",
	)
	ErrOrderIDsAreRequired = errs.NewValueIsRequiredError("orderIds")
)

// CreateSettlementCommand batches the given orders into one printer settlement.
// Duplicate ids are collapsed; order of first appearance is kept.
type CreateSettlementCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

func NewCreateSettlementCommand(orderIDs []kernel.UUID, note string) (CreateSettlementCommand, error) {
	command := CreateSettlementCommand{
		note:  strings.TrimSpace(note),
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderIDs(orderIDs); err != nil {
		return CreateSettlementCommand{}, err
	}

	return command, nil
}

func (c CreateSettlementCommand) Validate() error {
	return c.guard.Validate(ErrCreateSettlementCommandIsNotConstructed)
}

func (c CreateSettlementCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

func (c CreateSettlementCommand) Note() string {
	return c.note
}

func (c *CreateSettlementCommand) setOrderIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrOrderIDsAreRequired
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id.String()]; dup {
			continue
		}
		seen[id.String()] = struct{}{}
		unique = append(unique, id)
	}

	c.orderIDs = unique
	return nil
}
