package notifymock

import (
	"context"
	"sync"

	"chamaledger/internal/domain/loan"
	"chamaledger/internal/domain/notify"
	"chamaledger/internal/domain/payment"
)

var _ notify.Dispatcher = (*Dispatcher)(nil)

// Dispatcher records every event it receives, in order. Set Err to make
// every delivery fail; callers are expected to shrug that off.
type Dispatcher struct {
	mu     sync.Mutex
	events []string
	Err    error
}

func (d *Dispatcher) record(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, name)
	return d.Err
}

// Events returns a copy of the delivered event names in order.
func (d *Dispatcher) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func (d *Dispatcher) LoanRequested(context.Context, *loan.Loan) error {
	return d.record("loan_requested")
}
func (d *Dispatcher) LoanApproved(context.Context, *loan.Loan) error {
	return d.record("loan_approved")
}
func (d *Dispatcher) LoanRejected(context.Context, *loan.Loan) error {
	return d.record("loan_rejected")
}
func (d *Dispatcher) LoanActivated(context.Context, *loan.Loan) error {
	return d.record("loan_activated")
}
func (d *Dispatcher) LoanCompleted(context.Context, *loan.Loan) error {
	return d.record("loan_completed")
}
func (d *Dispatcher) LoanDefaulted(context.Context, *loan.Loan) error {
	return d.record("loan_defaulted")
}
func (d *Dispatcher) PaymentRecorded(context.Context, string, *payment.LoanPayment) error {
	return d.record("payment_recorded")
}
