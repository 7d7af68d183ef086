package jobs

import (
	"context"
	"time"

	"chamaledger/internal/config"
	"chamaledger/internal/logger"
	"chamaledger/internal/usecase/payment"
)

// JobRunner coordinates the engine's scheduled jobs.
type JobRunner struct {
	payments *payment.Usecase
	config   *config.Config
}

func NewJobRunner(payments *payment.Usecase, cfg *config.Config) *JobRunner {
	return &JobRunner{payments: payments, config: cfg}
}

func (jr *JobRunner) Config() *config.Config { return jr.config }

// runWithRecovery wraps job execution with panic recovery so one bad run
// never takes the scheduler down.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("starting job", "job", jobName)
	jobFunc()
	logger.Info("job completed", "job", jobName)
}

// MarkLoanDefaults sweeps for installments left pending past the grace
// period and moves their loans to defaulted.
func (jr *JobRunner) MarkLoanDefaults() {
	jr.runWithRecovery("MarkLoanDefaults", func() {
		ctx := context.Background()

		n, err := jr.payments.MarkDefaults(ctx, time.Now().UTC())
		if err != nil {
			// n loans may still have moved; errors.Join carries the per-loan
			// failures
			logger.Error("default sweep finished with errors", "defaulted", n, "error", err)
			return
		}
		logger.Info("default sweep finished", "defaulted", n)
	})
}
