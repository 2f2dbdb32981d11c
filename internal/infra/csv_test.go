package infra

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCSV(t *testing.T) {
	result := &dto.ReportResult{
		Type: dto.ReportSales,
		Table: dto.ReportTable{
			Columns: []string{"date", "customer", "total"},
			Rows: [][]string{
				{"2026-01-15", "Bazar Central", "$150.00"},
				{"2026-01-16", `Libreria "El Faro"`, "$1,200.50"},
			},
		},
	}

	out := ReportCSV(result)

	// BOM first, so spreadsheet software detects UTF-8.
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))

	body := string(out[3:])
	lines := []string{
		`"date","customer","total"`,
		`"2026-01-15","Bazar Central","$150.00"`,
		`"2026-01-16","Libreria ""El Faro""","$1,200.50"`,
		"",
	}
	assert.Equal(t, lines, strings.Split(body, "\r\n"))
}

func TestReportCSVEmptyTable(t *testing.T) {
	out := ReportCSV(&dto.ReportResult{
		Type:  dto.ReportInventory,
		Table: dto.ReportTable{Columns: []string{"sku", "name"}},
	})
	assert.Equal(t, "\uFEFF\"sku\",\"name\"\r\n", string(out))
}

func TestCSVFileName(t *testing.T) {
	at := time.Date(2026, 8, 31, 23, 30, 0, 0, time.FixedZone("ART", -3*3600))
	// File names use the UTC date, not the local one.
	assert.Equal(t, "inventory_report_2026-09-01.csv", CSVFileName("inventory", at))
}
