package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"chamaledger/internal/domain/loan"
)

// ErrEmptySchedule means the due date does not leave room for a single
// installment — a validator defect caught too late. The generator fails
// loudly instead of emitting a zero-length schedule.
var ErrEmptySchedule = errors.New("schedule would be empty: due date not after disbursement")

// Installment is one slice of the schedule before it becomes a stored
// LoanPayment row.
type Installment struct {
	Seq     int
	Amount  decimal.Decimal
	DueDate time.Time
}

// BuildSchedule expands a total repayable amount into installments.
//
// Lump sum is a single installment on the due date. Periodic frequencies
// place one installment per calendar boundary (week, month, quarter, year)
// after the disbursement date, up to and including the due date; when even
// the first boundary falls past the due date, a single installment on the
// due date is produced instead, so every schedule has at least one entry.
//
// The amount is split in integer minor units: each installment gets the
// floor share and the final one absorbs the remainder, so the sum always
// equals total exactly.
func BuildSchedule(total decimal.Decimal, freq loan.Frequency, disbursedAt, dueDate time.Time) ([]Installment, error) {
	if !dueDate.After(disbursedAt) {
		return nil, ErrEmptySchedule
	}

	dates := installmentDates(freq, disbursedAt, dueDate)
	if len(dates) == 0 {
		dates = []time.Time{dueDate}
	}

	n := int64(len(dates))
	cents := total.Shift(2).IntPart()
	share := cents / n

	out := make([]Installment, len(dates))
	for i, d := range dates {
		amt := share
		if int64(i) == n-1 {
			amt = cents - share*(n-1)
		}
		out[i] = Installment{Seq: i + 1, Amount: decimal.New(amt, -2), DueDate: d}
	}
	return out, nil
}

func installmentDates(freq loan.Frequency, from, due time.Time) []time.Time {
	if freq == loan.FrequencyLumpSum {
		return []time.Time{due}
	}

	var dates []time.Time
	for t := addPeriod(freq, from); !t.After(due); t = addPeriod(freq, t) {
		dates = append(dates, t)
	}
	return dates
}

func addPeriod(freq loan.Frequency, t time.Time) time.Time {
	switch freq {
	case loan.FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case loan.FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	case loan.FrequencyQuarterly:
		return t.AddDate(0, 3, 0)
	default: // annual
		return t.AddDate(1, 0, 0)
	}
}
