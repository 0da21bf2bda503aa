package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
)

// SettlementFilter narrows settlement listings. A nil Status returns all settlements.
type SettlementFilter struct {
	Status *settlement.Status
	Limit  int
}

// SettlementRepository defines the persistence contract for settlements and their order links.
type SettlementRepository interface {
	// Add persists the settlement row followed by its links.
	Add(ctx context.Context, aggregate *settlement.Settlement) error

	// UpdateStatus persists the status of an existing settlement. Financial fields are never written.
	UpdateStatus(ctx context.Context, aggregate *settlement.Settlement) error

	Get(ctx context.Context, id kernel.UUID) (*settlement.Settlement, error)

	// GetForUpdate row-locks the settlement until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*settlement.Settlement, error)

	List(ctx context.Context, filter SettlementFilter) ([]*settlement.Settlement, error)
}

// PrinterActionRepository is the append-only audit log of settlement actions.
type PrinterActionRepository interface {
	Append(ctx context.Context, action settlement.PrinterAction) error
	ListBySettlement(ctx context.Context, settlementID kernel.UUID) ([]settlement.PrinterAction, error)
}
