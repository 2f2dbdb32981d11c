package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$0.00", Currency(nil))

	zero := decimal.Zero
	assert.Equal(t, "$0.00", Currency(&zero))

	assert.Equal(t, "$1,234.56", CurrencyValue(decimal.NewFromFloat(1234.56)))
	assert.Equal(t, "$1,234,567.80", CurrencyValue(decimal.NewFromFloat(1234567.8)))
	assert.Equal(t, "$12.00", CurrencyValue(decimal.NewFromInt(12)))
	assert.Equal(t, "$0.10", CurrencyValue(decimal.NewFromFloat(0.1)))

	// Amounts round to cents before rendering.
	assert.Equal(t, "$9.99", CurrencyValue(decimal.NewFromFloat(9.994)))
	assert.Equal(t, "$-5.25", CurrencyValue(decimal.NewFromFloat(-5.25)))
}

func TestDayRange(t *testing.T) {
	from := time.Date(2026, 4, 2, 15, 30, 0, 0, time.UTC)
	to := time.Date(2026, 4, 5, 8, 0, 0, 0, time.UTC)

	start, end := DayRange(from, to)
	assert.Equal(t, "2026-04-02T00:00:00Z", start.Format(time.RFC3339))
	assert.Equal(t, time.Date(2026, 4, 5, 23, 59, 59, 999000000, time.UTC), end)
}

func TestParseDayRange(t *testing.T) {
	start, end, err := ParseDayRange("2026-04-02", "2026-04-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-02T00:00:00Z", start.Format(time.RFC3339))
	assert.True(t, end.After(start))
	assert.Equal(t, 2, end.Day())

	_, _, err = ParseDayRange("02/04/2026", "2026-04-05")
	assert.Error(t, err)

	_, _, err = ParseDayRange("2026-04-02", "not-a-date")
	assert.Error(t, err)
}
