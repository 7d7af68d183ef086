package notify

import (
	"context"
	"log/slog"

	"chamaledger/internal/domain/loan"
	"chamaledger/internal/domain/notify"
	"chamaledger/internal/domain/payment"
	"chamaledger/internal/logger"
)

var _ notify.Dispatcher = (*LogDispatcher)(nil)

// LogDispatcher writes every loan and payment event to the structured log.
// It stands in for a real delivery channel (SMS, email); the engine treats
// either the same way — fire and forget.
type LogDispatcher struct {
	log *slog.Logger
}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{log: logger.WithComponent("notify")}
}

func (d *LogDispatcher) loanEvent(event string, l *loan.Loan) error {
	d.log.Info(event,
		"loan_id", l.LoanID,
		"group_id", l.GroupID,
		"borrower_id", l.BorrowerID,
		"status", string(l.Status),
		"total_amount", l.TotalAmount.String(),
	)
	return nil
}

func (d *LogDispatcher) LoanRequested(_ context.Context, l *loan.Loan) error {
	return d.loanEvent("loan requested", l)
}

func (d *LogDispatcher) LoanApproved(_ context.Context, l *loan.Loan) error {
	return d.loanEvent("loan approved", l)
}

func (d *LogDispatcher) LoanRejected(_ context.Context, l *loan.Loan) error {
	return d.loanEvent("loan rejected", l)
}

func (d *LogDispatcher) LoanActivated(_ context.Context, l *loan.Loan) error {
	return d.loanEvent("loan activated", l)
}

func (d *LogDispatcher) LoanCompleted(_ context.Context, l *loan.Loan) error {
	return d.loanEvent("loan completed", l)
}

func (d *LogDispatcher) LoanDefaulted(_ context.Context, l *loan.Loan) error {
	return d.loanEvent("loan defaulted", l)
}

func (d *LogDispatcher) PaymentRecorded(_ context.Context, actorID string, p *payment.LoanPayment) error {
	d.log.Info("payment recorded",
		"payment_id", p.PaymentID,
		"seq", p.Seq,
		"status", string(p.Status),
		"amount_paid", p.AmountPaid.String(),
		"penalty", p.Penalty.String(),
		"actor_id", actorID,
	)
	return nil
}
