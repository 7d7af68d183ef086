package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"chamaledger/internal/adapter/repository/mysql"
	"chamaledger/internal/config"
	"chamaledger/internal/infrastructure/db"
	"chamaledger/internal/infrastructure/notify"
	"chamaledger/internal/jobs"
	"chamaledger/internal/logger"
	"chamaledger/internal/scheduler"
	paymentuc "chamaledger/internal/usecase/payment"
)

// The sweeper runs the default-detection job on a cron schedule, or once
// with -run-once for cron-less deployments and operators finishing a missed
// window by hand.
func main() {
	runOnce := flag.Bool("run-once", false, "run the default sweep once and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logger.Error("mysql connect failed", "error", err)
		os.Exit(1)
	}

	members := mysql.NewMembershipRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	notifier := notify.NewLogDispatcher()

	grace := time.Duration(cfg.GracePeriodDays) * 24 * time.Hour
	paymentUC := paymentuc.NewUsecase(members, loans, payments, uow, notifier, grace)
	runner := jobs.NewJobRunner(paymentUC, cfg)

	if *runOnce {
		runner.MarkLoanDefaults()
		return
	}

	sched := scheduler.NewScheduler(runner)
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
}
