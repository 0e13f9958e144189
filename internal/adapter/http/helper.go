package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	balanceDomain "loanbook/internal/domain/balance"
	ledgerDomain "loanbook/internal/domain/ledger"
	loanDomain "loanbook/internal/domain/loan"
)

// statusFor maps domain sentinels to HTTP codes. Anything unmapped is a bad
// request; the taxonomy is abort-only so no retry hints are attached.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledgerDomain.ErrNotAdmin),
		errors.Is(err, loanDomain.ErrNotBorrower):
		return http.StatusForbidden
	case errors.Is(err, ledgerDomain.ErrConfigNotFound),
		errors.Is(err, loanDomain.ErrTrackerNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, loanDomain.ErrLoanAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, loanDomain.ErrDeprecated):
		return http.StatusGone
	case errors.Is(err, loanDomain.ErrVectorLengthMismatch),
		errors.Is(err, loanDomain.ErrVectorEmpty),
		errors.Is(err, loanDomain.ErrInvalidPaymentOrder),
		errors.Is(err, ledgerDomain.ErrInvalidFundingSource),
		errors.Is(err, balanceDomain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func fail(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

// callerID pulls the acting identity from the Ax-Caller-Id header.
func callerID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get("Ax-Caller-Id"))
}

func requireCaller(c echo.Context) (string, bool) {
	id := callerID(c)
	if !reHex32.MatchString(id) {
		return "", false
	}
	return id, true
}

func intParam(c echo.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
