// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks for the narrowest family that covers the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SettlementRepoFactory provides access to settlement and audit repositories within a transaction.
	SettlementRepoFactory interface {
		SettlementRepository() ports.SettlementRepository
		PrinterActionRepository() ports.PrinterActionRepository
	}

	// OutboxFactory provides access to the notification outbox within a transaction.
	OutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW manages transactions for notification delivery bookkeeping.
	OutboxUoW interface {
		TxManager
		OutboxFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// UoW manages transactions across orders, settlements, the audit log and the outbox.
	// State changes and the notifications they owe are committed together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   outbox := uow.NotificationOutbox()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		SettlementRepoFactory
		OutboxFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// NotificationFlusher delivers specific outbox entries right after the transaction that
// queued them commits. Failures are left for the periodic dispatcher to retry.
type NotificationFlusher interface {
	Flush(ctx context.Context, keys []string) error
}
