package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rentledger/deposit-system/internal/core/domain"
	"github.com/rentledger/deposit-system/internal/core/ports"
)

// DepositHandler maps HTTP requests onto the deposit lifecycle engine.
type DepositHandler struct {
	service ports.DepositService
}

func NewDepositHandler(service ports.DepositService) *DepositHandler {
	return &DepositHandler{service: service}
}

// Request handles POST /api/deposit/request.
//
// @Summary      Request a deposit refund
// @Tags         deposits
// @Accept       json
// @Produce      json
// @Param        body  body      requestRefundRequest  true  "Refund amount"
// @Success      200   {object}  requestRefundResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/deposit/request [post]
func (h *DepositHandler) Request(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req requestRefundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid amount")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid amount")
	}

	result, err := h.service.RequestRefund(c.Request().Context(), identity, req.Amount)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, requestRefundResponse{
		Message:   "Deposit refund requested",
		DepositID: result.DepositID,
	})
}

// Respond handles POST /api/deposit/respond. The body is multipart form data:
// an optional "deduction" value, an optional "deposit_id", and an optional
// file under "documentation".
//
// @Summary      Respond to a pending refund request
// @Tags         deposits
// @Accept       multipart/form-data
// @Produce      json
// @Param        deduction      formData  string  false  "Deduction amount, defaults to 0"
// @Param        deposit_id     formData  string  false  "Target deposit; oldest pending when absent"
// @Param        documentation  formData  file    false  "Supporting documentation"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/deposit/respond [post]
func (h *DepositHandler) Respond(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	in := ports.RespondInput{DepositID: c.FormValue("deposit_id")}

	if raw := c.FormValue("deduction"); raw != "" {
		deduction, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.ErrInvalidDeduction
		}
		in.Deduction = &deduction
	}

	if fh, err := c.FormFile("documentation"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid documentation file")
		}
		defer src.Close()

		in.Document = &ports.DocumentInput{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      src,
		}
	}

	if err := h.service.Respond(c.Request().Context(), identity, in); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Response submitted"})
}

// Accept handles POST /api/deposit/accept.
//
// @Summary      Accept a landlord/agent response
// @Tags         deposits
// @Accept       json
// @Produce      json
// @Param        body  body      resolveRequest  false  "Optional explicit deposit id"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/deposit/accept [post]
func (h *DepositHandler) Accept(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	depositID, err := bindResolveRequest(c)
	if err != nil {
		return err
	}

	if err := h.service.Accept(c.Request().Context(), identity, depositID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Deposit response accepted"})
}

// Dispute handles POST /api/deposit/dispute.
//
// @Summary      Dispute a landlord/agent response
// @Tags         deposits
// @Accept       json
// @Produce      json
// @Param        body  body      resolveRequest  false  "Optional explicit deposit id"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/deposit/dispute [post]
func (h *DepositHandler) Dispute(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	depositID, err := bindResolveRequest(c)
	if err != nil {
		return err
	}

	if err := h.service.Dispute(c.Request().Context(), identity, depositID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Deposit response disputed"})
}

// Status handles GET /api/deposit/status.
//
// @Summary      Current deposit status for the caller
// @Tags         deposits
// @Produce      json
// @Success      200  {object}  statusResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/deposit/status [get]
func (h *DepositHandler) Status(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Status(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{
		Email:         result.Email,
		Role:          result.Role,
		DepositStatus: result.Deposit,
	})
}

// History handles GET /api/deposit/history.
//
// @Summary      All deposits for the caller, newest first
// @Tags         deposits
// @Produce      json
// @Success      200  {object}  historyResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/deposit/history [get]
func (h *DepositHandler) History(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.service.History(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, historyResponse{Deposits: views})
}

// bindResolveRequest reads the optional deposit id from accept/dispute
// bodies. An empty body is valid.
func bindResolveRequest(c echo.Context) (string, error) {
	if c.Request().ContentLength == 0 {
		return "", nil
	}
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}
	return req.DepositID, nil
}
