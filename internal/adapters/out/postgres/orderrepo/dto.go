// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders and their item snapshots are stored in two tables; items are written once with the
// order and never updated.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored by name so the table stays readable from SQL.
type OrderDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status               string    `gorm:"type:text;not null;index:idx_orders_payable_status,priority:2"`
	Email                string    `gorm:"type:text;not null"`
	TrackingNumber       *string   `gorm:"type:text"`
	Carrier              *string   `gorm:"type:text"`
	BasePrinterFeeCents  *int64
	PrinterPayableStatus string `gorm:"type:text;not null;default:UNBATCHED;index:idx_orders_payable_status,priority:1"`
	SubtotalCents        int64  `gorm:"not null;default:0"`
	ShippingCents        int64  `gorm:"not null;default:0"`
	TaxCents             int64  `gorm:"not null;default:0"`
	TotalCents           int64  `gorm:"not null;default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is an immutable line item snapshot.
type OrderItemDTO struct {
	ID                     int64     `gorm:"primaryKey;autoIncrement"`
	OrderID                uuid.UUID `gorm:"type:uuid;not null;index"`
	Position               int       `gorm:"not null"`
	Description            string    `gorm:"type:text;not null;default:''"`
	Qty                    int       `gorm:"not null"`
	BlankCostCentsSnapshot int64     `gorm:"not null"`
	PrintCostCentsSnapshot int64     `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its row and item rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	totals := aggregate.Totals()
	dto := OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		Status:               aggregate.Status().String(),
		Email:                aggregate.Email().String(),
		TrackingNumber:       aggregate.TrackingNumber(),
		Carrier:              aggregate.Carrier(),
		BasePrinterFeeCents:  aggregate.BasePrinterFeeCents(),
		PrinterPayableStatus: aggregate.PayableStatus().String(),
		SubtotalCents:        totals.SubtotalCents,
		ShippingCents:        totals.ShippingCents,
		TaxCents:             totals.TaxCents,
		TotalCents:           totals.TotalCents,
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
	}

	for i, item := range aggregate.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:                dto.ID,
			Position:               i,
			Description:            item.Description(),
			Qty:                    item.Qty(),
			BlankCostCentsSnapshot: item.BlankCostCentsSnapshot(),
			PrintCostCentsSnapshot: item.PrintCostCentsSnapshot(),
		})
	}

	return dto
}

// toDomain rebuilds the aggregate with RestoreOrder. Items must be loaded in position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	payable, err := order.ParsePayableStatus(dto.PrinterPayableStatus)
	if err != nil {
		return nil, err
	}

	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, row := range dto.Items {
		item, itemErr := order.NewItem(row.Description, row.Qty, row.BlankCostCentsSnapshot, row.PrintCostCentsSnapshot)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		status,
		email,
		dto.TrackingNumber,
		dto.Carrier,
		dto.BasePrinterFeeCents,
		payable,
		order.Totals{
			SubtotalCents: dto.SubtotalCents,
			ShippingCents: dto.ShippingCents,
			TaxCents:      dto.TaxCents,
			TotalCents:    dto.TotalCents,
		},
		items,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
