package service

import (
	"context"
	"testing"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowStockAlerts(t *testing.T) {
	products := newStubProductRepo()
	svc := NewInventoryService(products, &stubMovementRepo{})

	products.add(&model.Product{
		Name: "Thermal paper", SKU: "PAP-80", UnitPrice: decimal.NewFromInt(50),
		Stock: 10, MinStock: 2,
	})
	low := products.add(&model.Product{
		Name: "Label roll", SKU: "LBL-A4", UnitPrice: decimal.NewFromInt(12),
		Stock: 2, MinStock: 10,
	})
	out := products.add(&model.Product{
		Name: "Scanner", SKU: "SCN-1", UnitPrice: decimal.NewFromInt(300),
		Stock: 0, MinStock: 1,
	})

	alerts, err := svc.LowStockAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	byID := map[string]dto.LowStockAlertResponse{}
	for _, a := range alerts {
		byID[a.ProductID] = a
	}
	assert.Equal(t, model.StockStatusLow, byID[low.ID.String()].StockStatus)
	assert.Equal(t, model.StockStatusOut, byID[out.ID.String()].StockStatus)
}

func TestMovementsFilterByProduct(t *testing.T) {
	products := newStubProductRepo()
	moves := &stubMovementRepo{}
	svc := NewInventoryService(products, moves)

	a := products.add(&model.Product{Name: "A", SKU: "A-1", UnitPrice: decimal.NewFromInt(1)})
	b := products.add(&model.Product{Name: "B", SKU: "B-1", UnitPrice: decimal.NewFromInt(1)})
	require.NoError(t, moves.CreateTx(nil, &model.StockMovement{
		ProductID: a.ID, Type: model.MovementPurchase, Quantity: 5, StockAfter: 5,
	}))
	require.NoError(t, moves.CreateTx(nil, &model.StockMovement{
		ProductID: b.ID, Type: model.MovementSale, Quantity: -1, StockBefore: 3, StockAfter: 2,
	}))

	all, err := svc.Movements(context.Background(), dto.MovementFilter{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyA, err := svc.Movements(context.Background(), dto.MovementFilter{ProductID: a.ID.String(), Limit: 50})
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, model.MovementPurchase, onlyA[0].Type)
}
