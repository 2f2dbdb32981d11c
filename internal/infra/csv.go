package infra

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
)

// utf8BOM makes spreadsheet software detect the encoding instead of guessing.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReportCSV renders a report table as CSV. Every field is quoted, including
// numerics — downstream spreadsheet imports treat the file uniformly that way.
func ReportCSV(result *dto.ReportResult) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writeCSVRow(&buf, result.Table.Columns)
	for _, row := range result.Table.Rows {
		writeCSVRow(&buf, row)
	}
	return buf.Bytes()
}

func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

// CSVFileName builds the download name, e.g. "sales_report_2026-08-31.csv".
func CSVFileName(reportType string, at time.Time) string {
	return fmt.Sprintf("%s_report_%s.csv", reportType, at.UTC().Format("2006-01-02"))
}
