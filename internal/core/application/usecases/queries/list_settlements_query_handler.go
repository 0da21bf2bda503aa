package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/money"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListSettlementsQueryHandler struct {
	db *gorm.DB
}

func NewListSettlementsQueryHandler(db *gorm.DB) ListSettlementsQueryHandler {
	return ListSettlementsQueryHandler{db: db}
}

func (h ListSettlementsQueryHandler) Handle(
	ctx context.Context,
	query ListSettlementsQuery,
) ([]SettlementSummaryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var statusFilter *string
	if s := query.Status(); s != nil {
		name := s.String()
		statusFilter = &name
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.status,
			s.printer_email,
			s.subtotal_cents,
			s.total_cents,
			s.notes,
			(SELECT count(*) FROM settlement_order_links l WHERE l.settlement_id = s.id),
			s.created_at,
			s.updated_at
		FROM settlements s
		WHERE CAST(? AS text) IS NULL OR s.status = ?
		ORDER BY s.created_at DESC, s.id
		LIMIT ?
	`, statusFilter, statusFilter, query.Limit()).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("list settlements", err)
	}
	defer rows.Close()

	result := make([]SettlementSummaryView, 0)
	for rows.Next() {
		var (
			view  SettlementSummaryView
			rawID uuid.UUID
		)
		if err = rows.Scan(
			&rawID,
			&view.Status,
			&view.PrinterEmail,
			&view.SubtotalCents,
			&view.TotalCents,
			&view.Notes,
			&view.OrderCount,
			&view.CreatedAt,
			&view.UpdatedAt,
		); err != nil {
			return nil, errs.NewPersistenceError("list settlements", err)
		}

		if view.ID, err = kernel.UUIDFromBytes(rawID[:]); err != nil {
			return nil, err
		}
		view.Total = money.FormatCents(view.TotalCents)
		result = append(result, view)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("list settlements", err)
	}
	return result, nil
}
