package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "chamaledger/internal/adapter/http"
	"chamaledger/internal/adapter/middleware"
	"chamaledger/internal/adapter/repository/mysql"
	"chamaledger/internal/config"
	"chamaledger/internal/infrastructure/cache"
	"chamaledger/internal/infrastructure/db"
	"chamaledger/internal/infrastructure/notify"
	"chamaledger/internal/logger"
	groupuc "chamaledger/internal/usecase/group"
	loanuc "chamaledger/internal/usecase/loan"
	paymentuc "chamaledger/internal/usecase/payment"
)

func main() {
	// .env is optional; real deployments set the environment directly
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

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Error("redis connect failed", "error", err)
		os.Exit(1)
	}

	groups := mysql.NewGroupRepository(gdb)
	members := mysql.NewMembershipRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	notifier := notify.NewLogDispatcher()

	grace := time.Duration(cfg.GracePeriodDays) * 24 * time.Hour
	groupUC := groupuc.NewUsecase(groups, members, uow)
	loanUC := loanuc.NewUsecase(groups, members, loans, payments, uow, notifier)
	paymentUC := paymentuc.NewUsecase(members, loans, payments, uow, notifier, grace)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	httpadp.RegisterRoutes(e,
		httpadp.NewHandler(),
		httpadp.NewGroupHandler(groupUC),
		httpadp.NewLoanHandler(loanUC),
		httpadp.NewPaymentHandler(paymentUC),
	)

	go func() {
		addr := ":" + cfg.AppPort
		logger.Info("listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
