package infra

// pdf.go — report rendering with go-pdf/fpdf. Layout: centered title,
// generation timestamp, summary lines, then the data table with a dark bold
// header row and alternating row fill. Footer carries "Page N/{nb}".

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"

	"github.com/go-pdf/fpdf"
)

// ReportPDF renders the report into an in-memory PDF for direct download.
func ReportPDF(result *dto.ReportResult, generatedAt time.Time) ([]byte, error) {
	pdf := buildReportPDF(result, generatedAt)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteReportPDF renders the report to storagePath (created if needed) and
// returns the absolute file path. Used by the async export worker.
func WriteReportPDF(result *dto.ReportResult, storagePath string, generatedAt time.Time) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	fileName := fmt.Sprintf("%s_report_%s.pdf", result.Type, generatedAt.UTC().Format("2006-01-02"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := buildReportPDF(result, generatedAt)
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func buildReportPDF(result *dto.ReportResult, generatedAt time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Title ────────────────────────────────────────────────────────────────
	title := strings.ToUpper(result.Type[:1]) + result.Type[1:] + " Report"
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(contentW, 5, "Generated "+generatedAt.UTC().Format("2006-01-02 15:04 UTC"), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)

	// ── Summary ──────────────────────────────────────────────────────────────
	if len(result.Summary) > 0 {
		pdf.SetFont("Helvetica", "", 9)
		for _, key := range summaryKeys(result.Summary) {
			label := strings.ReplaceAll(key, "_", " ")
			pdf.CellFormat(50, 5, label+":", "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(0, 5, result.Summary[key], "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
		}
		pdf.Ln(3)
	}

	// ── Table ────────────────────────────────────────────────────────────────
	cols := result.Table.Columns
	if len(cols) == 0 {
		return pdf
	}
	colW := contentW / float64(len(cols))

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(52, 58, 64)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range cols {
			label := strings.ReplaceAll(col, "_", " ")
			pdf.CellFormat(colW, 7, label, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	// Core fonts are cp1252; translate so accented names render correctly.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "", 8)
	_, pageH := pdf.GetPageSize()
	for i, row := range result.Table.Rows {
		if pdf.GetY() > pageH-24 {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 8)
		}
		fill := i%2 == 1
		pdf.SetFillColor(243, 244, 246)
		for _, field := range row {
			// truncate instead of wrapping; the CSV export keeps full values
			pdf.CellFormat(colW, 6, tr(truncateField(field, 40)), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf
}

// truncateField shortens a cell value to max runes, never splitting a
// multi-byte sequence.
func truncateField(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "..."
}

func summaryKeys(summary map[string]string) []string {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	// map order is random; a stable render beats insertion fidelity here
	sort.Strings(keys)
	return keys
}
