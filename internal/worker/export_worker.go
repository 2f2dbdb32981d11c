package worker

// export_worker.go
// Processes report export jobs from QueueExport: generates the report,
// renders it to CSV or PDF on disk, and emails it to the requester.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/infra"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxExportAttempts = 3

// ExportJobPayload is the job envelope sent to QueueExport.
type ExportJobPayload struct {
	ReportType  string `json:"report_type"`
	DateFrom    string `json:"date_from,omitempty"`
	DateTo      string `json:"date_to,omitempty"`
	Format      string `json:"format"` // csv | pdf
	RequestedBy string `json:"requested_by"`
}

// ExportWorker generates and delivers report exports.
type ExportWorker struct {
	reports     service.ReportService
	mailer      *infra.Mailer
	rdb         *redis.Client
	storagePath string
}

func NewExportWorker(reports service.ReportService, mailer *infra.Mailer, rdb *redis.Client, storagePath string) *ExportWorker {
	return &ExportWorker{reports: reports, mailer: mailer, rdb: rdb, storagePath: storagePath}
}

// Process generates the requested report, writes the export file, and emails
// it. Failed jobs land in the DLQ after maxExportAttempts.
func (w *ExportWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ExportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("export_worker: invalid payload")
		return
	}

	err := withRetry(ctx, maxExportAttempts, func(attempt int) error {
		if attempt > 0 {
			log.Warn().
				Int("attempt", attempt+1).
				Str("report_type", payload.ReportType).
				Msg("export_worker: retrying export")
		}
		return w.export(ctx, payload)
	})
	if err != nil {
		log.Error().Err(err).Str("report_type", payload.ReportType).Msg("export_worker: export failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueExport, "export", raw, err.Error(), maxExportAttempts)
	}
}

func (w *ExportWorker) export(ctx context.Context, payload ExportJobPayload) error {
	result, err := w.reports.Generate(ctx, dto.ReportRequest{
		Type:     payload.ReportType,
		DateFrom: payload.DateFrom,
		DateTo:   payload.DateTo,
	})
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	now := time.Now()
	var filePath string
	switch payload.Format {
	case "pdf":
		filePath, err = infra.WriteReportPDF(result, w.storagePath, now)
		if err != nil {
			return err
		}
	default:
		if err := os.MkdirAll(w.storagePath, 0755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
		filePath = filepath.Join(w.storagePath, infra.CSVFileName(payload.ReportType, now))
		if err := os.WriteFile(filePath, infra.ReportCSV(result), 0644); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	log.Info().Str("file", filePath).Str("report_type", payload.ReportType).Msg("export_worker: export written")

	if payload.RequestedBy == "" {
		return nil
	}
	subject := fmt.Sprintf("Your %s report export", payload.ReportType)
	body := fmt.Sprintf("The %s report you requested is attached.\nGenerated %s.",
		payload.ReportType, now.UTC().Format("2006-01-02 15:04 UTC"))
	if err := w.mailer.Send(payload.RequestedBy, subject, body, filePath); err != nil {
		return fmt.Errorf("send export email: %w", err)
	}
	log.Info().Str("to", payload.RequestedBy).Msg("export_worker: export emailed")
	return nil
}
