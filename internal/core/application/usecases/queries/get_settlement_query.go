package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetSettlementQueryIsNotConstructed = errors.New(
		"GetSettlementQuery must be created via NewGetSettlementQuery constructor",
	)
)

// GetSettlementQuery reads a settlement with its order links and audit trail.
type GetSettlementQuery struct {
	settlementID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSettlementQuery(settlementID kernel.UUID) (GetSettlementQuery, error) {
	if err := settlementID.Validate(); err != nil {
		return GetSettlementQuery{}, err
	}
	return GetSettlementQuery{settlementID: settlementID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSettlementQuery) Validate() error {
	return q.guard.Validate(ErrGetSettlementQueryIsNotConstructed)
}

func (q GetSettlementQuery) SettlementID() kernel.UUID {
	return q.settlementID
}

// SettlementLinkView is one order's frozen contribution to the settlement.
type SettlementLinkView struct {
	OrderID     kernel.UUID          `json:"orderId"`
	AmountCents int64                `json:"amountCents"`
	Amount      string               `json:"amount"`
	Breakdown   settlement.Breakdown `json:"breakdown"`
}

// PrinterActionView is one audit entry.
type PrinterActionView struct {
	ID        kernel.UUID `json:"id"`
	Action    string      `json:"action"`
	CreatedAt time.Time   `json:"createdAt"`
}

// GetSettlementQueryResponse is the settlement detail view.
type GetSettlementQueryResponse struct {
	Settlement SettlementSummaryView `json:"settlement"`
	Links      []SettlementLinkView  `json:"links"`
	Actions    []PrinterActionView   `json:"actions"`
}
