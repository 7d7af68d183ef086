package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"chamaledger/internal/jobs"
	"chamaledger/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler builds a scheduler around the job runner. Cron specs carry a
// seconds field and run in UTC.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{cron: c, jobs: jobRunner}
	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config()

	_, err := s.cron.AddFunc(cfg.SweepSchedule, s.jobs.MarkLoanDefaults)
	if err != nil {
		logger.Error("failed to register MarkLoanDefaults job", "spec", cfg.SweepSchedule, "error", err)
		return
	}

	logger.Info("cron jobs registered", "sweep_schedule", cfg.SweepSchedule)
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("cron scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("cron scheduler stopped")
}
