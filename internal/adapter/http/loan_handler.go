package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	loanDomain "chamaledger/internal/domain/loan"
	"chamaledger/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID  string `json:"borrower_id"          validate:"omitempty,hex32"`
	Amount      string `json:"amount"               validate:"required,dec2"`
	Purpose     string `json:"purpose"              validate:"max=500"`
	Frequency   string `json:"repayment_frequency"  validate:"required,oneof=lump_sum weekly monthly quarterly annual"`
	DueDate     string `json:"due_date"             validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	AutoApprove bool   `json:"auto_approve"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	requester, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Member-Id"})
	}
	groupID := c.Param("group_id")
	if !reHex32.MatchString(groupID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid group_id path param"})
	}

	var req createLoanReq
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
	dueDate, _ := time.Parse(time.RFC3339, req.DueDate) // format already validated

	dto, err := h.uc.Create(c.Request().Context(), requester, loan.CreateLoanInput{
		GroupID:     groupID,
		BorrowerID:  req.BorrowerID,
		Amount:      amount,
		Purpose:     req.Purpose,
		Frequency:   loanDomain.Frequency(req.Frequency),
		DueDate:     dueDate,
		AutoApprove: req.AutoApprove,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Member-Id"})
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), actor, loanID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	return h.decide(c, h.uc.Approve)
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	return h.decide(c, h.uc.Reject)
}

func (h *LoanHandler) RepairSchedule(c echo.Context) error {
	return h.decide(c, h.uc.RepairSchedule)
}

// decide is the shared shape of approve/reject/repair: actor + loan_id in,
// LoanDTO out.
func (h *LoanHandler) decide(c echo.Context, op func(ctx context.Context, actorID, loanID string) (*loan.LoanDTO, error)) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Member-Id"})
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	dto, err := op(c.Request().Context(), actor, loanID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
