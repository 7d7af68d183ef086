package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// RegisterRoutes wires the whole engine surface onto e.
func RegisterRoutes(e *echo.Echo, h *Handler, gh *GroupHandler, lh *LoanHandler, ph *PaymentHandler) {
	e.GET("/health", h.Health)

	e.POST("/groups", gh.CreateGroup)
	e.POST("/groups/:group_id/members", gh.JoinGroup)
	e.PATCH("/groups/:group_id/members/:member_id", gh.UpdateMember)

	e.POST("/groups/:group_id/loans", lh.CreateLoan)
	e.GET("/loans/:loan_id", lh.GetLoan)
	e.POST("/loans/:loan_id/approve", lh.ApproveLoan)
	e.POST("/loans/:loan_id/reject", lh.RejectLoan)
	e.POST("/loans/:loan_id/schedule/repair", lh.RepairSchedule)

	e.GET("/loans/:loan_id/payments", ph.ListPayments)
	e.POST("/payments/:payment_id/record", ph.RecordPayment)
}
