package infra

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *dto.ReportResult {
	return &dto.ReportResult{
		Type: dto.ReportSales,
		Summary: map[string]string{
			"total_sales":   "2",
			"total_revenue": "$1,350.50",
		},
		Table: dto.ReportTable{
			Columns: []string{"date", "customer", "total"},
			Rows: [][]string{
				{"2026-01-15", "Bazar Central", "$150.00"},
				{"2026-01-16", "Libreria El Faro", "$1,200.50"},
			},
		},
	}
}

func TestReportPDF(t *testing.T) {
	out, err := ReportPDF(sampleReport(), time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 1000)
}

func TestReportPDFManyRows(t *testing.T) {
	report := sampleReport()
	for i := 0; i < 200; i++ {
		report.Table.Rows = append(report.Table.Rows, []string{"2026-02-01", "Cliente", "$10.00"})
	}
	// Enough rows to force page breaks.
	out, err := ReportPDF(report, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestTruncateField(t *testing.T) {
	assert.Equal(t, "short", truncateField("short", 40))

	long := strings.Repeat("x", 45)
	got := truncateField(long, 40)
	assert.Equal(t, strings.Repeat("x", 39)+"...", got)

	// Rune-based: accented characters never get split mid-sequence.
	accented := strings.Repeat("ñ", 45)
	got = truncateField(accented, 40)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("ñ", 39)+"...", got)
}

func TestReportPDFAccentedText(t *testing.T) {
	report := sampleReport()
	report.Table.Rows = append(report.Table.Rows, []string{
		"2026-01-17", "Almacén Doña Ramírez — sucursal ñandú con nombre larguísimo de verdad", "$99.99",
	})
	out, err := ReportPDF(report, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestWriteReportPDF(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	path, err := WriteReportPDF(sampleReport(), dir, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sales_report_2026-08-31.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
