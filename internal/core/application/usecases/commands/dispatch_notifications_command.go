package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// DefaultDispatchBatchSize bounds how many outbox rows one dispatch run claims.
const DefaultDispatchBatchSize = 50

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// DispatchNotificationsCommand drains due outbox entries. With keys it only looks at
// those entries, which is how a handler delivers what it just committed.
type DispatchNotificationsCommand struct {
	limit int
	keys  []string

	guard guard.ConstructorGuard
}

func NewDispatchNotificationsCommand(limit int, keys ...string) DispatchNotificationsCommand {
	if limit <= 0 {
		limit = DefaultDispatchBatchSize
	}
	return DispatchNotificationsCommand{
		limit: limit,
		keys:  append([]string(nil), keys...),
		guard: guard.NewConstructorGuard(),
	}
}

func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

func (c DispatchNotificationsCommand) Limit() int {
	return c.limit
}

func (c DispatchNotificationsCommand) Keys() []string {
	return append([]string(nil), c.keys...)
}
