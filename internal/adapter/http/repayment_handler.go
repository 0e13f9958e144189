package http

import (
	"net/http"

	"loanbook/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

type repayReq struct {
	Amount uint64 `json:"amount" validate:"required,gte=1"`
}

func (h *RepaymentHandler) Repay(c echo.Context) error {
	caller, ok := requireCaller(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req repayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Repay(c.Request().Context(), repayment.RepayInput{
		CallerID: caller,
		LoanID:   c.Param("loan_id"),
		Amount:   req.Amount,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RepaymentHandler) RepayBySeed(c echo.Context) error {
	caller, ok := requireCaller(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req repayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RepayBySeed(c.Request().Context(), repayment.RepayBySeedInput{
		CallerID: caller,
		LedgerID: c.Param("ledger_id"),
		Seed:     c.Param("seed"),
		Amount:   req.Amount,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// RepayHistoricalBySeed is the tracker-addressed historical variant.
func (h *RepaymentHandler) RepayHistoricalBySeed(c echo.Context) error {
	caller, ok := requireCaller(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req repayHistoricalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RepayHistoricalBySeed(c.Request().Context(), c.Param("ledger_id"), c.Param("seed"), repayment.HistoricalInput{
		CallerID: caller,
		AdminID:  req.AdminID,
		Amount:   req.Amount,
		AsOf:     req.AsOf,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type repayHistoricalReq struct {
	Amount  uint64 `json:"amount"   validate:"required,gte=1"`
	AdminID string `json:"admin_id" validate:"required,hex32"`
	AsOf    int64  `json:"as_of"    validate:"required,gte=1"`
}

func (h *RepaymentHandler) RepayHistorical(c echo.Context) error {
	caller, ok := requireCaller(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req repayHistoricalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RepayHistorical(c.Request().Context(), repayment.HistoricalInput{
		CallerID: caller,
		AdminID:  req.AdminID,
		LoanID:   c.Param("loan_id"),
		Amount:   req.Amount,
		AsOf:     req.AsOf,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
