package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/config"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/infra"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/repository"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/router"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/service"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger — dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Async workers: report exports and low-stock alert digests. Wired here
	// (composition root) so the pool has full access to infrastructure.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	inventorySvc := service.NewInventoryService(productRepo, movementRepo)
	reportSvc := service.NewReportService(
		productRepo,
		repository.NewSaleRepository(db),
		repository.NewPurchaseRepository(db),
		movementRepo,
		repository.NewSnapshotRepository(db),
	)

	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.Handlers{
		Export: worker.NewExportWorker(reportSvc, mailer, rdb, cfg.ExportStoragePath),
		Alert:  worker.NewAlertWorker(mailer, smtpCB, rdb, cfg.AlertEmail),
	})
	worker.StartLowStockCron(ctx, worker.LowStockCronConfig{
		Inventory:  inventorySvc,
		Dispatcher: dispatcher,
		CB:         smtpCB,
		Period:     time.Duration(cfg.LowStockScanPeriod) * time.Minute,
	})

	r := router.New(cfg, db, rdb, smtpCB, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("opero backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
