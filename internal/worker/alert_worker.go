package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueAlert: renders a plain-text digest
// of products at or under their minimum and mails it to the configured
// recipient. SMTP calls go through the circuit breaker so a downed relay
// fast-fails instead of tying up workers.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AlertJobPayload is the job envelope sent to QueueAlert.
type AlertJobPayload struct {
	Alerts []dto.LowStockAlertResponse `json:"alerts"`
}

type AlertWorker struct {
	mailer     *infra.Mailer
	cb         *infra.CircuitBreaker
	rdb        *redis.Client
	alertEmail string
}

func NewAlertWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client, alertEmail string) *AlertWorker {
	return &AlertWorker{mailer: mailer, cb: cb, rdb: rdb, alertEmail: alertEmail}
}

// Process sends the low-stock digest email.
func (w *AlertWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return
	}
	if len(payload.Alerts) == 0 || w.alertEmail == "" {
		log.Debug().Msg("alert_worker: nothing to send")
		return
	}

	subject := fmt.Sprintf("Low stock alert: %d product(s) need restocking", len(payload.Alerts))
	body := digestBody(payload.Alerts)

	err := w.cb.Execute(func() error {
		return w.mailer.Send(w.alertEmail, subject, body, "")
	})
	if err != nil {
		log.Error().Err(err).Msg("alert_worker: failed to send digest")
		SendToDLQ(ctx, w.rdb, QueueAlert, "alert", raw, err.Error(), 1)
		return
	}
	log.Info().Int("products", len(payload.Alerts)).Str("to", w.alertEmail).Msg("alert_worker: digest sent")
}

func digestBody(alerts []dto.LowStockAlertResponse) string {
	var b strings.Builder
	b.WriteString("The following products are at or under their minimum stock:\n\n")
	for _, a := range alerts {
		b.WriteString(fmt.Sprintf("  - %s (%s): %d on hand, minimum %d [%s]\n",
			a.Name, a.SKU, a.Stock, a.MinStock, a.StockStatus))
	}
	b.WriteString("\nRestock from the purchases page.\n")
	return b.String()
}
