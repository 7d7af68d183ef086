package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"chamaledger/internal/usecase/payment"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	Amount string `json:"amount"   validate:"required,dec2"`
	// PaidAt is when the money actually changed hands; cash collected at a
	// meeting is often keyed in later.
	PaidAt string `json:"paid_at"  validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Member-Id"})
	}
	paymentID := c.Param("payment_id")
	if !reHex32.MatchString(paymentID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payment_id path param"})
	}

	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "Amount", Message: "must be a decimal"}},
		})
	}
	paidAt, _ := time.Parse(time.RFC3339, req.PaidAt) // format already validated

	dto, err := h.uc.Record(c.Request().Context(), actor, payment.RecordPaymentInput{
		PaymentID: paymentID,
		Amount:    amount,
		PaidAt:    paidAt,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Member-Id"})
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}

	dtos, err := h.uc.ListByLoan(c.Request().Context(), actor, loanID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
