package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DefaultSettlementListLimit caps listings when the caller does not ask for a limit.
const DefaultSettlementListLimit = 100

var (
	ErrListSettlementsQueryIsNotConstructed = errors.New(
		"ListSettlementsQuery must be created via NewListSettlementsQuery constructor",
	)
)

// ListSettlementsQuery lists settlements newest first, optionally filtered by status.
type ListSettlementsQuery struct {
	status *settlement.Status
	limit  int

	guard guard.ConstructorGuard
}

// NewListSettlementsQuery accepts an empty status for "all". limit <= 0 applies the default.
func NewListSettlementsQuery(status string, limit int) (ListSettlementsQuery, error) {
	query := ListSettlementsQuery{limit: limit, guard: guard.NewConstructorGuard()}
	if query.limit <= 0 {
		query.limit = DefaultSettlementListLimit
	}
	if query.limit > 1000 {
		return ListSettlementsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, 1000)
	}

	if status != "" {
		parsed, err := settlement.ParseStatus(status)
		if err != nil {
			return ListSettlementsQuery{}, err
		}
		query.status = &parsed
	}

	return query, nil
}

func (q ListSettlementsQuery) Validate() error {
	return q.guard.Validate(ErrListSettlementsQueryIsNotConstructed)
}

// Status is nil when every status is requested.
func (q ListSettlementsQuery) Status() *settlement.Status {
	return q.status
}

func (q ListSettlementsQuery) Limit() int {
	return q.limit
}

// SettlementSummaryView is one row of the settlement listing.
type SettlementSummaryView struct {
	ID            kernel.UUID `json:"id"`
	Status        string      `json:"status"`
	PrinterEmail  string      `json:"printerEmail"`
	SubtotalCents int64       `json:"subtotalCents"`
	TotalCents    int64       `json:"totalCents"`
	Total         string      `json:"total"`
	Notes         string      `json:"notes"`
	OrderCount    int         `json:"orderCount"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}
