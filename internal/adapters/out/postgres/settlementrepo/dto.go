// Package settlementrepo persists settlements, their order links and the printer action log.
package settlementrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"

	"github.com/google/uuid"
)

// SettlementDTO is the settlements row. Totals are written once on insert.
type SettlementDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status        string    `gorm:"type:text;not null;index"`
	PrinterEmail  string    `gorm:"type:text;not null"`
	SubtotalCents int64     `gorm:"not null"`
	TotalCents    int64     `gorm:"not null"`
	Notes         string    `gorm:"type:text;not null;default:''"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time

	Links []LinkDTO `gorm:"foreignKey:SettlementID;constraint:OnDelete:CASCADE"`
}

func (SettlementDTO) TableName() string {
	return "settlements"
}

// LinkDTO ties one order to one settlement. The unique order_id index is what keeps an
// order from being paid twice.
type LinkDTO struct {
	SettlementID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;primaryKey;uniqueIndex:idx_settlement_order_links_order"`
	Position       int             `gorm:"not null"`
	AmountCents    int64           `gorm:"not null"`
	CalcDetailJSON json.RawMessage `gorm:"column:calc_detail_json;type:jsonb;not null"`
}

func (LinkDTO) TableName() string {
	return "settlement_order_links"
}

// PrinterActionDTO is an append-only audit row.
type PrinterActionDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SettlementID uuid.UUID `gorm:"type:uuid;not null;index"`
	Action       string    `gorm:"type:text;not null"`
	CreatedAt    time.Time
}

func (PrinterActionDTO) TableName() string {
	return "printer_actions"
}

func fromDomain(aggregate *settlement.Settlement) (SettlementDTO, error) {
	dto := SettlementDTO{
		ID:            aggregate.ID().Bytes(),
		Status:        aggregate.Status().String(),
		PrinterEmail:  aggregate.PrinterEmail().String(),
		SubtotalCents: aggregate.SubtotalCents(),
		TotalCents:    aggregate.TotalCents(),
		Notes:         aggregate.Notes(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}

	for i, l := range aggregate.Links() {
		detail, err := json.Marshal(l.Breakdown())
		if err != nil {
			return SettlementDTO{}, err
		}
		dto.Links = append(dto.Links, LinkDTO{
			SettlementID:   dto.ID,
			OrderID:        l.OrderID().Bytes(),
			Position:       i,
			AmountCents:    l.AmountCents(),
			CalcDetailJSON: detail,
		})
	}

	return dto, nil
}

func toDomain(dto SettlementDTO) (*settlement.Settlement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := settlement.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	email, err := kernel.NewEmail(dto.PrinterEmail)
	if err != nil {
		return nil, err
	}

	links := make([]settlement.Link, 0, len(dto.Links))
	for _, row := range dto.Links {
		link, linkErr := linkToDomain(row)
		if linkErr != nil {
			return nil, linkErr
		}
		links = append(links, link)
	}

	return settlement.RestoreSettlement(
		id,
		status,
		email,
		dto.SubtotalCents,
		dto.TotalCents,
		dto.Notes,
		links,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func linkToDomain(row LinkDTO) (settlement.Link, error) {
	orderID, err := kernel.UUIDFromBytes(row.OrderID[:])
	if err != nil {
		return settlement.Link{}, err
	}

	var breakdown settlement.Breakdown
	if len(row.CalcDetailJSON) > 0 {
		if err = json.Unmarshal(row.CalcDetailJSON, &breakdown); err != nil {
			return settlement.Link{}, err
		}
	}

	return settlement.NewLink(orderID, row.AmountCents, breakdown)
}

func actionFromDomain(action settlement.PrinterAction) PrinterActionDTO {
	return PrinterActionDTO{
		ID:           action.ID().Bytes(),
		SettlementID: action.SettlementID().Bytes(),
		Action:       string(action.Action()),
		CreatedAt:    action.CreatedAt(),
	}
}

func actionToDomain(dto PrinterActionDTO) (settlement.PrinterAction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return settlement.PrinterAction{}, err
	}
	settlementID, err := kernel.UUIDFromBytes(dto.SettlementID[:])
	if err != nil {
		return settlement.PrinterAction{}, err
	}
	return settlement.NewPrinterAction(id, settlementID, settlement.Action(dto.Action), dto.CreatedAt)
}
