package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after Begin
// share its transaction; callers must Commit or Rollback explicitly.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	SettlementRepository() SettlementRepository
	PrinterActionRepository() PrinterActionRepository
	NotificationOutbox() NotificationOutbox
}
