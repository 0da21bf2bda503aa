package http

import (
	"context"
	"net/http"
	"net/url"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// UpdateOrderStatus godoc
// @Summary   Printer webhook: move an order to a new status
// @Tags      printer
// @Accept    json
// @Produce   json
// @Security  PrinterSecret
// @Param     update body orderStatusRequest true "Target status and optional tracking"
// @Success   200 {object} orderUpdatedResponse
// @Failure   400 {object} errorResponse
// @Failure   401 {object} errorResponse
// @Failure   404 {object} errorResponse
// @Failure   409 {object} errorResponse
// @Router    /api/printer/orders/status [post]
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	updated, err := s.transitionFromStatusRequest(c)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderUpdatedResponse{Success: true, Order: orderView(updated)})
}

// UpdateOrderStatusLink godoc
// @Summary   Printer link: move an order to a new status, then redirect
// @Tags      printer
// @Param     orderId        query string true  "Order ID"
// @Param     status         query string true  "Target status"
// @Param     trackingNumber query string false "Tracking number"
// @Param     carrier        query string false "Carrier"
// @Param     token          query string false "Printer secret"
// @Success   303
// @Router    /api/printer/orders/status [get]
func (s *Server) UpdateOrderStatusLink(c echo.Context) error {
	updated, err := s.transitionFromStatusRequest(c)
	if err != nil {
		s.logFailure(c, err)
		return s.redirectError(c, reasonFor(err))
	}
	return s.redirectSuccess(c, updated)
}

// MarkOrderReceived godoc
// @Summary   Printer webhook: the printer received the order
// @Tags      printer
// @Accept    json
// @Produce   json
// @Security  PrinterSecret
// @Param     order body orderReceivedRequest true "Order reference"
// @Success   200 {object} orderUpdatedResponse
// @Failure   400 {object} errorResponse
// @Failure   401 {object} errorResponse
// @Failure   404 {object} errorResponse
// @Failure   409 {object} errorResponse
// @Router    /api/printer/orders/received [post]
func (s *Server) MarkOrderReceived(c echo.Context) error {
	updated, err := s.transitionFromReceivedRequest(c)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderUpdatedResponse{Success: true, Order: orderView(updated)})
}

// MarkOrderReceivedLink godoc
// @Summary   Printer link: the printer received the order, then redirect
// @Tags      printer
// @Param     orderId query string true  "Order ID"
// @Param     token   query string false "Printer secret"
// @Success   303
// @Router    /api/printer/orders/received [get]
func (s *Server) MarkOrderReceivedLink(c echo.Context) error {
	updated, err := s.transitionFromReceivedRequest(c)
	if err != nil {
		s.logFailure(c, err)
		return s.redirectError(c, reasonFor(err))
	}
	return s.redirectSuccess(c, updated)
}

func (s *Server) transitionFromStatusRequest(c echo.Context) (*order.Order, error) {
	var req orderStatusRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	return s.transition(c.Request().Context(), req.OrderID, target, order.Shipment{
		TrackingNumber: req.TrackingNumber,
		Carrier:        req.Carrier,
	})
}

func (s *Server) transitionFromReceivedRequest(c echo.Context) (*order.Order, error) {
	var req orderReceivedRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return s.transition(c.Request().Context(), req.OrderID, order.ReceivedByPrinter, order.Shipment{})
}

func (s *Server) transition(
	ctx context.Context,
	rawOrderID string,
	target order.Status,
	shipment order.Shipment,
) (*order.Order, error) {
	orderID, err := parseUUID("orderId", rawOrderID)
	if err != nil {
		return nil, err
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, target, shipment)
	if err != nil {
		return nil, err
	}

	return s.handlers.TransitionOrderStatus.Handle(ctx, cmd)
}

func (s *Server) redirectSuccess(c echo.Context, o *order.Order) error {
	q := url.Values{}
	q.Set("orderId", o.ID().String())
	q.Set("status", o.Status().String())
	return c.Redirect(http.StatusSeeOther, s.url("/printer/success?"+q.Encode()))
}

func (s *Server) redirectError(c echo.Context, reason string) error {
	q := url.Values{}
	q.Set("reason", reason)
	return c.Redirect(http.StatusSeeOther, s.url("/printer/error?"+q.Encode()))
}
