package http

import (
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/money"
)

type orderUpdatedResponse struct {
	Success bool              `json:"success"`
	Order   queries.OrderView `json:"order"`
}

type settlementResponse struct {
	Settlement queries.SettlementSummaryView `json:"settlement"`
	// Skipped lists requested orders that were already batched.
	Skipped []kernel.UUID `json:"skipped,omitempty"`
}

type settlementListResponse struct {
	Settlements []queries.SettlementSummaryView `json:"settlements"`
}

func orderView(o *order.Order) queries.OrderView {
	totals := o.Totals()
	return queries.OrderView{
		ID:                   o.ID(),
		Status:               o.Status().String(),
		Email:                o.Email().String(),
		TrackingNumber:       o.TrackingNumber(),
		Carrier:              o.Carrier(),
		BasePrinterFeeCents:  o.BasePrinterFeeCents(),
		PrinterPayableStatus: o.PayableStatus().String(),
		SubtotalCents:        totals.SubtotalCents,
		ShippingCents:        totals.ShippingCents,
		TaxCents:             totals.TaxCents,
		TotalCents:           totals.TotalCents,
		CreatedAt:            o.CreatedAt(),
		UpdatedAt:            o.UpdatedAt(),
	}
}

func orderDetail(o *order.Order) queries.GetOrderQueryResponse {
	items := o.Items()
	views := make([]queries.OrderItemView, 0, len(items))
	for _, item := range items {
		views = append(views, queries.OrderItemView{
			Description:            item.Description(),
			Qty:                    item.Qty(),
			BlankCostCentsSnapshot: item.BlankCostCentsSnapshot(),
			PrintCostCentsSnapshot: item.PrintCostCentsSnapshot(),
		})
	}
	return queries.GetOrderQueryResponse{Order: orderView(o), Items: views}
}

func settlementSummary(s *settlement.Settlement) queries.SettlementSummaryView {
	return queries.SettlementSummaryView{
		ID:            s.ID(),
		Status:        s.Status().String(),
		PrinterEmail:  s.PrinterEmail().String(),
		SubtotalCents: s.SubtotalCents(),
		TotalCents:    s.TotalCents(),
		Total:         money.FormatCents(s.TotalCents()),
		Notes:         s.Notes(),
		OrderCount:    len(s.Links()),
		CreatedAt:     s.CreatedAt(),
		UpdatedAt:     s.UpdatedAt(),
	}
}
