package queries

import (
	"context"
	"encoding/json"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/money"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetSettlementQueryHandler struct {
	db *gorm.DB
}

func NewGetSettlementQueryHandler(db *gorm.DB) GetSettlementQueryHandler {
	return GetSettlementQueryHandler{db: db}
}

func (h GetSettlementQueryHandler) Handle(
	ctx context.Context,
	query GetSettlementQuery,
) (GetSettlementQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSettlementQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.SettlementID()

	var (
		summary SettlementSummaryView
		rawID   uuid.UUID
	)
	err := db.Raw(`
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
		WHERE s.id = ?
	`, id.Bytes()).Row().Scan(
		&rawID,
		&summary.Status,
		&summary.PrinterEmail,
		&summary.SubtotalCents,
		&summary.TotalCents,
		&summary.Notes,
		&summary.OrderCount,
		&summary.CreatedAt,
		&summary.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return GetSettlementQueryResponse{}, errs.NewObjectNotFoundError("settlement", id.String())
		}
		return GetSettlementQueryResponse{}, errs.NewPersistenceError("read settlement", err)
	}
	summary.ID = id
	summary.Total = money.FormatCents(summary.TotalCents)

	links, err := h.links(db, id)
	if err != nil {
		return GetSettlementQueryResponse{}, err
	}

	actions, err := h.actions(db, id)
	if err != nil {
		return GetSettlementQueryResponse{}, err
	}

	return GetSettlementQueryResponse{Settlement: summary, Links: links, Actions: actions}, nil
}

func (h GetSettlementQueryHandler) links(db *gorm.DB, id kernel.UUID) ([]SettlementLinkView, error) {
	rows, err := db.Raw(`
		SELECT order_id, amount_cents, calc_detail_json
		FROM settlement_order_links
		WHERE settlement_id = ?
		ORDER BY position
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("read settlement links", err)
	}
	defer rows.Close()

	links := make([]SettlementLinkView, 0)
	for rows.Next() {
		var (
			link   SettlementLinkView
			rawID  uuid.UUID
			detail []byte
		)
		if err = rows.Scan(&rawID, &link.AmountCents, &detail); err != nil {
			return nil, errs.NewPersistenceError("read settlement links", err)
		}
		if link.OrderID, err = kernel.UUIDFromBytes(rawID[:]); err != nil {
			return nil, err
		}
		if len(detail) > 0 {
			if err = json.Unmarshal(detail, &link.Breakdown); err != nil {
				return nil, errs.NewPersistenceError("decode settlement breakdown", err)
			}
		}
		link.Amount = money.FormatCents(link.AmountCents)
		links = append(links, link)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("read settlement links", err)
	}
	return links, nil
}

func (h GetSettlementQueryHandler) actions(db *gorm.DB, id kernel.UUID) ([]PrinterActionView, error) {
	rows, err := db.Raw(`
		SELECT id, action, created_at
		FROM printer_actions
		WHERE settlement_id = ?
		ORDER BY created_at, id
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("read printer actions", err)
	}
	defer rows.Close()

	actions := make([]PrinterActionView, 0)
	for rows.Next() {
		var (
			action PrinterActionView
			rawID  uuid.UUID
		)
		if err = rows.Scan(&rawID, &action.Action, &action.CreatedAt); err != nil {
			return nil, errs.NewPersistenceError("read printer actions", err)
		}
		if action.ID, err = kernel.UUIDFromBytes(rawID[:]); err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("read printer actions", err)
	}
	return actions, nil
}
