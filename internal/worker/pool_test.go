package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, func(attempt int) error {
		calls++
		assert.Equal(t, calls-1, attempt)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryRecoversAfterFailure(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, func(int) error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryReturnsLastError(t *testing.T) {
	boom := errors.New("smtp unreachable")
	calls := 0
	err := withRetry(context.Background(), 3, func(int) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestWithRetryHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		// Cancel while the retry loop sleeps between attempts.
		cancel()
	}()
	err := withRetry(ctx, 3, func(int) error {
		calls++
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.LessOrEqual(t, calls, 3)
}

func TestDigestBody(t *testing.T) {
	body := digestBody([]dto.LowStockAlertResponse{
		{Name: "Label roll", SKU: "LBL-A4", Stock: 2, MinStock: 10, StockStatus: "LOW_STOCK"},
		{Name: "Scanner", SKU: "SCN-1", Stock: 0, MinStock: 1, StockStatus: "OUT_OF_STOCK"},
	})

	assert.Contains(t, body, "Label roll (LBL-A4): 2 on hand, minimum 10 [LOW_STOCK]")
	assert.Contains(t, body, "Scanner (SCN-1): 0 on hand, minimum 1 [OUT_OF_STOCK]")
	assert.Contains(t, body, "Restock from the purchases page.")
}
