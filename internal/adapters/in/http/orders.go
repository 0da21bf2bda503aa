package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// RegisterOrder godoc
// @Summary   Record a paid order produced by checkout
// @Tags      orders
// @Accept    json
// @Produce   json
// @Security  AdminKey
// @Param     order body registerOrderRequest true "Paid order with item snapshots"
// @Success   201 {object} queries.GetOrderQueryResponse
// @Failure   400 {object} errorResponse
// @Failure   409 {object} errorResponse
// @Router    /api/orders [post]
func (s *Server) RegisterOrder(c echo.Context) error {
	var req registerOrderRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	orderID, err := parseUUID("orderId", req.OrderID)
	if err != nil {
		return s.fail(c, err)
	}

	items := make([]commands.PaidOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.PaidOrderItem{
			Description:    item.Description,
			Qty:            item.Qty,
			BlankCostCents: item.BlankCostCents,
			PrintCostCents: item.PrintCostCents,
		})
	}

	cmd, err := commands.NewRegisterPaidOrderCommand(orderID, req.Email, order.Totals{
		SubtotalCents: req.SubtotalCents,
		ShippingCents: req.ShippingCents,
		TaxCents:      req.TaxCents,
		TotalCents:    req.TotalCents,
	}, req.BasePrinterFeeCents, items)
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.handlers.RegisterPaidOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, orderDetail(created))
}

// GetOrder godoc
// @Summary   Read an order with its items
// @Tags      orders
// @Produce   json
// @Security  AdminKey
// @Param     id path string true "Order ID"
// @Success   200 {object} queries.GetOrderQueryResponse
// @Failure   404 {object} errorResponse
// @Router    /api/orders/{id} [get]
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := parseUUID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	response, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, response)
}
