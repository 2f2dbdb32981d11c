// Package format holds the small rendering helpers shared by report
// summaries and the CSV/PDF exporters.
package format

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency renders a money amount as "$1,234.56". A nil amount coalesces to
// zero — "$0.00" — instead of erroring.
func Currency(d *decimal.Decimal) string {
	v := decimal.Zero
	if d != nil {
		v = *d
	}
	f, _ := v.Round(2).Float64()
	return printer.Sprintf("$%.2f", f)
}

// CurrencyValue is Currency for a non-pointer amount.
func CurrencyValue(d decimal.Decimal) string {
	return Currency(&d)
}

// DayRange widens a [from, to] date pair (both "2006-01-02") to inclusive UTC
// day boundaries: from 00:00:00.000Z through to 23:59:59.999Z.
func DayRange(from, to time.Time) (time.Time, time.Time) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999000000, time.UTC)
	return start, end
}

// ParseDayRange parses "2006-01-02" bounds and widens them via DayRange.
func ParseDayRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation("2006-01-02", fromStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := DayRange(from, to)
	return start, end, nil
}
