package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrBatchUnbatchedOrdersCommandIsNotConstructed = errors.New(
	"BatchUnbatchedOrdersCommand must be created via NewBatchUnbatchedOrdersCommand constructor",
)

// BatchUnbatchedOrdersCommand settles every billable unbatched order in one batch.
// A non-positive limit batches them all.
type BatchUnbatchedOrdersCommand struct {
	limit int
	note  string

	guard guard.ConstructorGuard
}

func NewBatchUnbatchedOrdersCommand(limit int, note string) BatchUnbatchedOrdersCommand {
	return BatchUnbatchedOrdersCommand{limit: limit, note: note, guard: guard.NewConstructorGuard()}
}

func (c BatchUnbatchedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBatchUnbatchedOrdersCommandIsNotConstructed)
}

func (c BatchUnbatchedOrdersCommand) Limit() int {
	return c.limit
}

func (c BatchUnbatchedOrdersCommand) Note() string {
	return c.note
}
