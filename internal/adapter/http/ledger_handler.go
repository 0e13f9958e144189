package http

import (
	"net/http"

	"loanbook/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

type LedgerHandler struct{ uc *ledger.Usecase }

func NewLedgerHandler(uc *ledger.Usecase) *LedgerHandler { return &LedgerHandler{uc: uc} }

type createLedgerReq struct {
	OwnerID         string   `json:"owner_id"          validate:"required,hex32"`
	Name            string   `json:"name"              validate:"required"`
	SettlementAsset string   `json:"settlement_asset"  validate:"required"`
	Bridging        bool     `json:"bridging"`
	FundingSource   string   `json:"funding_source"    validate:"required"`
	Admins          []string `json:"admins"            validate:"omitempty,dive,hex32"`
}

func (h *LedgerHandler) CreateLedger(c echo.Context) error {
	var req createLedgerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), ledger.CreateInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LedgerHandler) GetLedger(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("ledger_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LedgerHandler) EnableTracker(c echo.Context) error {
	caller, ok := requireCaller(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	dto, err := h.uc.EnableTracker(c.Request().Context(), caller, c.Param("ledger_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type setAutoPledgeReq struct {
	Enabled  bool   `json:"enabled"`
	Facility string `json:"facility" validate:"omitempty,hex32"`
}

func (h *LedgerHandler) SetAutoPledge(c echo.Context) error {
	caller, ok := requireCaller(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req setAutoPledgeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if req.Enabled && req.Facility == "" {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "facility is required when enabling auto-pledge"})
	}
	dto, err := h.uc.SetAutoPledge(c.Request().Context(), caller, c.Param("ledger_id"), req.Enabled, req.Facility)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LedgerHandler) GetAutoPledge(c echo.Context) error {
	facility, err := h.uc.AutoPledgeAddress(c.Request().Context(), c.Param("ledger_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"enabled":  facility != "",
		"facility": facility,
	})
}

func (h *LedgerHandler) IsAdmin(c echo.Context) error {
	ok, err := h.uc.IsAdmin(c.Request().Context(), c.Param("ledger_id"), c.Param("caller_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"is_admin": ok})
}
