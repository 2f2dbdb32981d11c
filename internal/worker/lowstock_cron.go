package worker

// lowstock_cron.go
// Background goroutine that periodically scans for products at or under
// their minimum stock and enqueues an alert digest job when any are found.
// The scan is skipped while the SMTP circuit breaker is open — a digest that
// cannot be delivered would only churn the queue.

import (
	"context"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/infra"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/service"

	"github.com/rs/zerolog/log"
)

// LowStockCronConfig holds all dependencies for the scan goroutine.
type LowStockCronConfig struct {
	Inventory  service.InventoryService
	Dispatcher *Dispatcher
	CB         *infra.CircuitBreaker
	Period     time.Duration
}

// StartLowStockCron launches a background goroutine that ticks every Period,
// queries the low-stock view, and enqueues a digest job when non-empty.
// It respects the context for graceful shutdown.
func StartLowStockCron(ctx context.Context, cfg LowStockCronConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Period)
		defer ticker.Stop()

		log.Info().Dur("period", cfg.Period).Msg("lowstock_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("lowstock_cron: shutting down")
				return
			case <-ticker.C:
				scanLowStock(ctx, cfg)
			}
		}
	}()
}

func scanLowStock(ctx context.Context, cfg LowStockCronConfig) {
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("lowstock_cron: circuit breaker is open, skipping tick")
		return
	}

	alerts, err := cfg.Inventory.LowStockAlerts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("lowstock_cron: scan failed")
		return
	}
	if len(alerts) == 0 {
		return
	}

	if err := cfg.Dispatcher.EnqueueAlert(ctx, AlertJobPayload{Alerts: alerts}); err != nil {
		log.Error().Err(err).Msg("lowstock_cron: failed to enqueue digest")
		return
	}
	log.Info().Int("products", len(alerts)).Msg("lowstock_cron: digest enqueued")
}
