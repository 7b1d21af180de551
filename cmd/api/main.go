package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "corebanking-review/internal/adapter/http"
	"corebanking-review/internal/adapter/middleware"
	"corebanking-review/internal/adapter/repository/mysql"
	"corebanking-review/internal/config"
	"corebanking-review/internal/infrastructure/cache"
	"corebanking-review/internal/infrastructure/db"
	"corebanking-review/internal/jobs"
	"corebanking-review/internal/usecase/limits"
	overdraftuc "corebanking-review/internal/usecase/overdraft"
	reviewuc "corebanking-review/internal/usecase/review"
	tieruc "corebanking-review/internal/usecase/tier"
	"corebanking-review/pkg/clock"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// repositories
	reviews := mysql.NewReviewRepository(gdb)
	histories := mysql.NewReviewHistoryRepository(gdb)
	tiers := mysql.NewTierRepository(gdb)
	ledgerRepo := mysql.NewLedgerRepository(gdb)
	beneficiaries := mysql.NewBeneficiaryRepository(gdb)
	overdrafts := mysql.NewOverdraftRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	// usecases
	businessClock := clock.System{}
	tierUC := tieruc.NewUsecase(tiers)
	aggregator := limits.NewAggregator(ledgerRepo)
	guard := limits.NewGuard(beneficiaries, tierUC, aggregator, businessClock, limits.GuardConfig{
		DailyTPTLimitEnabled: cfg.DailyTPTLimitEnabled,
		DailyTPTLimit:        cfg.DailyTPTLimit,
	})
	reviewUC := reviewuc.NewUsecase(reviews, histories, uow)
	overdraftUC := overdraftuc.NewUsecase(overdrafts, guard, uow, businessClock, log)

	// nightly overdraft expiry sweep
	sweep := jobs.NewExpirySweep(overdraftUC, log)
	if err := sweep.Start(cfg.ExpirySweepSchedule); err != nil {
		log.Fatalf("expiry sweep: %v", err)
	}

	// handlers
	h := httpadp.NewHandler()
	reviewH := httpadp.NewReviewHandler(reviewUC)
	transferH := httpadp.NewTransferHandler(guard)
	tierH := httpadp.NewTierHandler(tierUC)
	overdraftH := httpadp.NewOverdraftHandler(overdraftUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)

	e.GET("/health", h.Health)

	e.POST("/reviews", reviewH.Enqueue, idemp)
	e.POST("/reviews/assign", reviewH.AssignBalanced, idemp)
	e.POST("/reviews/:item_id/command", reviewH.Command, idemp)
	e.GET("/reviews/:item_id", reviewH.Get)
	e.GET("/reviews", reviewH.List)
	e.GET("/staff/:staff_id/backlog", reviewH.Backlog)

	e.POST("/transfers/check", transferH.CheckTransfer)
	e.POST("/deposits/check", transferH.CheckDeposit)

	e.POST("/overdrafts", overdraftH.Request, idemp)
	e.POST("/overdrafts/:facility_id/command", overdraftH.Command, idemp)
	e.GET("/overdrafts/:facility_id", overdraftH.Get)
	e.GET("/savings/:savings_id/overdrafts", overdraftH.ListBySavings)

	e.POST("/tiers", tierH.Create, idemp)
	e.GET("/tiers/resolve", tierH.Resolve)
	e.GET("/tiers/:tier_id", tierH.Get)
	e.PUT("/tiers/:tier_id", tierH.Update, idemp)
	e.DELETE("/tiers/:tier_id", tierH.Delete, idemp)

	addr := ":" + cfg.AppPort
	go func() {
		log.Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	sweep.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
