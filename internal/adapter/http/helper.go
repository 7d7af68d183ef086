package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	groupDomain "chamaledger/internal/domain/group"
	loanDomain "chamaledger/internal/domain/loan"
	memberDomain "chamaledger/internal/domain/membership"
	paymentDomain "chamaledger/internal/domain/payment"
	"chamaledger/internal/logger"
)

// actorID pulls the acting member's identity from the X-Member-Id header.
// Every engine operation takes the actor explicitly, so a request without
// one is unusable.
func actorID(c echo.Context) (string, bool) {
	v := strings.TrimSpace(c.Request().Header.Get("X-Member-Id"))
	return v, reHex32.MatchString(v)
}

// writeDomainError maps engine errors onto the HTTP surface:
//
//	ValidationError        → 400
//	AuthorizationError     → 403
//	IllegalTransitionError → 409 (caller should re-fetch current state)
//	not-found sentinels    → 404
//	PartialFailureError    → 500 + the repair route
func writeDomainError(c echo.Context, err error) error {
	var ve *loanDomain.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Reason}},
		})
	}

	var ae *memberDomain.AuthorizationError
	if errors.As(err, &ae) {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: ae.Error()})
	}

	var lt *loanDomain.IllegalTransitionError
	if errors.As(err, &lt) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: lt.Error()})
	}
	var pt *paymentDomain.IllegalTransitionError
	if errors.As(err, &pt) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: pt.Error()})
	}

	if errors.Is(err, groupDomain.ErrNotFound) ||
		errors.Is(err, memberDomain.ErrNotFound) ||
		errors.Is(err, loanDomain.ErrNotFound) ||
		errors.Is(err, paymentDomain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	var pf *loanDomain.PartialFailureError
	if errors.As(err, &pf) {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: pf.Error() + "; retry via POST /loans/" + pf.LoanID + "/schedule/repair",
		})
	}

	logger.Error("unhandled engine error", "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
