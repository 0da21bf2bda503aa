package http

import (
	"net/http"
	"net/url"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"

	"github.com/labstack/echo/v4"
)

// CreateSettlement godoc
// @Summary   Batch unbatched orders into a settlement and notify the printer
// @Tags      settlements
// @Accept    json
// @Produce   json
// @Security  AdminKey
// @Param     batch body createSettlementRequest true "Orders to settle"
// @Success   201 {object} settlementResponse
// @Failure   400 {object} errorResponse
// @Failure   404 {object} errorResponse
// @Failure   409 {object} errorResponse
// @Router    /api/admin/settlements [post]
func (s *Server) CreateSettlement(c echo.Context) error {
	var req createSettlementRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := parseUUID("orderIds", raw)
		if err != nil {
			return s.fail(c, err)
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewCreateSettlementCommand(orderIDs, req.Note)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.CreateSettlement.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, settlementResponse{
		Settlement: settlementSummary(result.Settlement),
		Skipped:    result.Skipped,
	})
}

// ListSettlements godoc
// @Summary   List settlements, newest first
// @Tags      settlements
// @Produce   json
// @Security  AdminKey
// @Param     status query string false "SENT, AGREED, ADJUST_REQUESTED or PAID"
// @Param     limit  query int    false "Maximum rows"
// @Success   200 {object} settlementListResponse
// @Failure   400 {object} errorResponse
// @Router    /api/admin/settlements [get]
func (s *Server) ListSettlements(c echo.Context) error {
	var req listSettlementsRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListSettlementsQuery(req.Status, req.Limit)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.handlers.ListSettlements.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	if rows == nil {
		rows = []queries.SettlementSummaryView{}
	}

	return c.JSON(http.StatusOK, settlementListResponse{Settlements: rows})
}

// GetUnbatchedPayables godoc
// @Summary   Orders owed to the printer that are not in a settlement yet
// @Tags      settlements
// @Produce   json
// @Security  AdminKey
// @Success   200 {object} queries.GetUnbatchedPayablesQueryResponse
// @Router    /api/admin/settlements/unbatched [get]
func (s *Server) GetUnbatchedPayables(c echo.Context) error {
	response, err := s.handlers.GetUnbatchedPayables.Handle(
		c.Request().Context(), queries.NewGetUnbatchedPayablesQuery(),
	)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// GetSettlement godoc
// @Summary   Settlement detail with frozen links and audit trail
// @Tags      settlements
// @Produce   json
// @Security  AdminKey
// @Param     id path string true "Settlement ID"
// @Success   200 {object} queries.GetSettlementQueryResponse
// @Failure   404 {object} errorResponse
// @Router    /api/admin/settlements/{id} [get]
func (s *Server) GetSettlement(c echo.Context) error {
	settlementID, err := parseUUID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetSettlementQuery(settlementID)
	if err != nil {
		return s.fail(c, err)
	}

	response, err := s.handlers.GetSettlement.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// ResendSettlement godoc
// @Summary   Send an adjust-requested settlement to the printer again
// @Tags      settlements
// @Produce   json
// @Security  AdminKey
// @Param     id path string true "Settlement ID"
// @Success   200 {object} settlementResponse
// @Failure   404 {object} errorResponse
// @Failure   409 {object} errorResponse
// @Router    /api/admin/settlements/{id}/resend [post]
func (s *Server) ResendSettlement(c echo.Context) error {
	settlementID, err := parseUUID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewResendSettlementCommand(settlementID)
	if err != nil {
		return s.fail(c, err)
	}

	resent, err := s.handlers.ResendSettlement.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, settlementResponse{Settlement: settlementSummary(resent)})
}

// SettlementActionLink godoc
// @Summary   Printer link: agree, request changes or confirm payment
// @Tags      printer
// @Param     id     path  string true  "Settlement ID"
// @Param     action path  string true  "agree, needs-updated or paid"
// @Param     token  query string false "Printer secret"
// @Success   303
// @Router    /api/printer/settlements/{id}/{action} [get]
func (s *Server) SettlementActionLink(c echo.Context) error {
	action, err := settlement.ParseLinkAction(c.Param("action"))
	if err != nil {
		return s.redirectSettlementFailure(c, err)
	}

	settlementID, err := parseUUID("id", c.Param("id"))
	if err != nil {
		return s.redirectSettlementFailure(c, err)
	}

	cmd, err := commands.NewApplySettlementActionCommand(settlementID, action)
	if err != nil {
		return s.redirectSettlementFailure(c, err)
	}

	if _, err = s.handlers.ApplySettlementAction.Handle(c.Request().Context(), cmd); err != nil {
		return s.redirectSettlementFailure(c, err)
	}

	q := url.Values{}
	q.Set("status", action.LinkFlag())
	q.Set("settlementId", settlementID.String())
	return c.Redirect(http.StatusSeeOther, s.url("/printer/settlements?"+q.Encode()))
}

func (s *Server) redirectSettlementFailure(c echo.Context, err error) error {
	s.logFailure(c, err)
	return s.redirectSettlementError(c, reasonFor(err))
}

func (s *Server) redirectSettlementError(c echo.Context, reason string) error {
	q := url.Values{}
	q.Set("status", "error")
	q.Set("reason", reason)
	return c.Redirect(http.StatusSeeOther, s.url("/printer/settlements?"+q.Encode()))
}
