package http

import (
	"encoding/hex"
	"net/http"

	loanDomain "loanbook/internal/domain/loan"
	"loanbook/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type originateReq struct {
	Seed       string `json:"seed"        validate:"required,hexbytes,max=64"`
	BorrowerID string `json:"borrower_id" validate:"required,hex32"`

	DueAt     []int64  `json:"due_at"    validate:"required,min=1"`
	Principal []uint64 `json:"principal" validate:"required"`
	Interest  []uint64 `json:"interest"  validate:"required"`
	Fee       []uint64 `json:"fee"       validate:"required"`

	PaymentOrder uint8 `json:"payment_order" validate:"required,paymask"`

	Asset     *string `json:"asset,omitempty"`
	StartTime *int64  `json:"start_time,omitempty"`
	RiskScore *uint64 `json:"risk_score,omitempty"`
}

func (h *LoanHandler) bindOriginate(c echo.Context) (*loan.OriginateInput, error) {
	caller, ok := requireCaller(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "missing or invalid Ax-Caller-Id")
	}
	var req originateReq
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &loan.OriginateInput{
		LedgerID:     c.Param("ledger_id"),
		CallerID:     caller,
		Seed:         req.Seed,
		BorrowerID:   req.BorrowerID,
		DueAt:        req.DueAt,
		Principal:    req.Principal,
		Interest:     req.Interest,
		Fee:          req.Fee,
		PaymentOrder: req.PaymentOrder,
		Asset:        req.Asset,
		StartTime:    req.StartTime,
		RiskScore:    req.RiskScore,
	}, nil
}

func (h *LoanHandler) originate(c echo.Context, simple bool) error {
	in, err := h.bindOriginate(c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return c.JSON(he.Code, ErrorResponse{Error: he.Message.(string)})
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	var dto *loan.LoanDTO
	if simple {
		dto, err = h.uc.OriginateSimple(c.Request().Context(), *in)
	} else {
		dto, err = h.uc.Originate(c.Request().Context(), *in)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Originate(c echo.Context) error { return h.originate(c, false) }

func (h *LoanHandler) OriginateSimple(c echo.Context) error { return h.originate(c, true) }

// DeprecatedOriginate answers the superseded flat entry point so old callers
// get a migration signal instead of a routing miss.
func (h *LoanHandler) DeprecatedOriginate(c echo.Context) error {
	return fail(c, loanDomain.ErrDeprecated)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ResolveLoan(c echo.Context) error {
	dto, err := h.uc.Resolve(c.Request().Context(), c.Param("ledger_id"), c.Param("seed"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) LoanExists(c echo.Context) error {
	ok, err := h.uc.Exists(c.Request().Context(), c.Param("ledger_id"), c.Param("seed"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": ok})
}

type updateIntervalReq struct {
	DueAt     *int64  `json:"due_at,omitempty"`
	Principal *uint64 `json:"principal,omitempty"`
	Interest  *uint64 `json:"interest,omitempty"`
	Fee       *uint64 `json:"fee,omitempty"`
}

func (h *LoanHandler) UpdateScheduleByIndex(c echo.Context) error {
	caller, ok := requireCaller(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	index, err := intParam(c, "index")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid interval index"})
	}
	var req updateIntervalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	err = h.uc.UpdateScheduleByIndex(c.Request().Context(), loan.UpdateIntervalInput{
		CallerID:  caller,
		LoanID:    c.Param("loan_id"),
		Index:     index,
		DueAt:     req.DueAt,
		Principal: req.Principal,
		Interest:  req.Interest,
		Fee:       req.Fee,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateScheduleBySeed is the tracker-addressed variant of the interval edit.
func (h *LoanHandler) UpdateScheduleBySeed(c echo.Context) error {
	caller, ok := requireCaller(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	index, err := intParam(c, "index")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid interval index"})
	}
	var req updateIntervalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	err = h.uc.UpdateScheduleBySeed(c.Request().Context(), c.Param("ledger_id"), c.Param("seed"), loan.UpdateIntervalInput{
		CallerID:  caller,
		Index:     index,
		DueAt:     req.DueAt,
		Principal: req.Principal,
		Interest:  req.Interest,
		Fee:       req.Fee,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type updateFeeReq struct {
	Index int    `json:"index" validate:"gte=0"`
	Fee   uint64 `json:"fee"`
}

func (h *LoanHandler) UpdateFee(c echo.Context) error {
	caller, ok := requireCaller(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req updateFeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.uc.UpdateFee(c.Request().Context(), caller, c.Param("loan_id"), req.Index, req.Fee); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type addFeeInterestReq struct {
	Index    int    `json:"index" validate:"gte=0"`
	Fee      uint64 `json:"fee"`
	Interest uint64 `json:"interest"`
}

func (h *LoanHandler) AddFeeInterest(c echo.Context) error {
	caller, ok := requireCaller(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req addFeeInterestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.uc.AddFeeInterest(c.Request().Context(), caller, c.Param("loan_id"), req.Index, req.Fee, req.Interest); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type addDocumentReq struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	Hash        string `json:"hash"        validate:"required,hexbytes"`
}

func (h *LoanHandler) AddDocument(c echo.Context) error {
	caller, ok := requireCaller(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req addDocumentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	hash, _ := hex.DecodeString(req.Hash)
	err := h.uc.AddDocument(c.Request().Context(), loan.AddDocumentInput{
		CallerID:    caller,
		LoanID:      c.Param("loan_id"),
		Name:        req.Name,
		Description: req.Description,
		Hash:        hash,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}
