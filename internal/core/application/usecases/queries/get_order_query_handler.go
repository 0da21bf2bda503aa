package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID()

	var (
		view  OrderView
		rawID uuid.UUID
	)
	row := db.Raw(`
		SELECT
			id,
			status,
			email,
			tracking_number,
			carrier,
			base_printer_fee_cents,
			printer_payable_status,
			subtotal_cents,
			shipping_cents,
			tax_cents,
			total_cents,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, id.Bytes()).Row()
	err := row.Scan(
		&rawID,
		&view.Status,
		&view.Email,
		&view.TrackingNumber,
		&view.Carrier,
		&view.BasePrinterFeeCents,
		&view.PrinterPayableStatus,
		&view.SubtotalCents,
		&view.ShippingCents,
		&view.TaxCents,
		&view.TotalCents,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", id.String())
		}
		return GetOrderQueryResponse{}, errs.NewPersistenceError("read order", err)
	}

	if view.ID, err = kernel.UUIDFromBytes(rawID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	items, err := h.items(db, id)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{Order: view, Items: items}, nil
}

func (h GetOrderQueryHandler) items(db *gorm.DB, id kernel.UUID) ([]OrderItemView, error) {
	rows, err := db.Raw(`
		SELECT
			description,
			qty,
			blank_cost_cents_snapshot,
			print_cost_cents_snapshot
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("read order items", err)
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var item OrderItemView
		if err = rows.Scan(
			&item.Description,
			&item.Qty,
			&item.BlankCostCentsSnapshot,
			&item.PrintCostCentsSnapshot,
		); err != nil {
			return nil, errs.NewPersistenceError("read order items", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("read order items", err)
	}
	return items, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
