package service

import (
	"context"
	"testing"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductFixture() (ProductService, *stubProductRepo, *stubMovementRepo) {
	products := newStubProductRepo()
	moves := &stubMovementRepo{}
	return NewProductService(products, moves, NewListCache(nil)), products, moves
}

func TestProductCreate(t *testing.T) {
	svc, products, _ := newProductFixture()

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Thermal paper", SKU: "PAP-80", Category: "consumables",
		UnitPrice: decimal.NewFromInt(50), Stock: 10, MinStock: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "PAP-80", resp.SKU)
	assert.Equal(t, 10, resp.Stock)

	_, err = svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Another", SKU: "PAP-80", Category: "consumables",
		UnitPrice: decimal.NewFromInt(1),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sku "PAP-80" already in use`)
	assert.Len(t, products.products, 1)
}

func TestProductAdjustStock(t *testing.T) {
	svc, products, moves := newProductFixture()
	p := products.add(&model.Product{
		Name: "Label roll", SKU: "LBL-A4", Category: "consumables",
		UnitPrice: decimal.NewFromInt(12), Stock: 5, MinStock: 10,
	})

	resp, err := svc.AdjustStock(context.Background(), p.ID, dto.AdjustStockRequest{
		Delta: -3, Notes: "damaged in storage",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Stock)
	assert.Equal(t, 2, products.products[p.ID].Stock)

	require.Len(t, moves.movements, 1)
	mov := moves.movements[0]
	assert.Equal(t, model.MovementAdjustment, mov.Type)
	assert.Equal(t, -3, mov.Quantity)
	assert.Equal(t, 5, mov.StockBefore)
	assert.Equal(t, 2, mov.StockAfter)
	assert.Equal(t, "damaged in storage", mov.Notes)
	assert.Nil(t, mov.ReferenceID)
}

func TestProductAdjustStockOverdraw(t *testing.T) {
	svc, products, moves := newProductFixture()
	p := products.add(&model.Product{
		Name: "Scanner", SKU: "SCN-1", Category: "hardware",
		UnitPrice: decimal.NewFromInt(300), Stock: 2,
	})

	_, err := svc.AdjustStock(context.Background(), p.ID, dto.AdjustStockRequest{
		Delta: -5, Notes: "stocktake correction",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would overdraw stock (2 on hand)")
	assert.Equal(t, 2, products.products[p.ID].Stock)
	assert.Empty(t, moves.movements)

	_, err = svc.AdjustStock(context.Background(), uuid.New(), dto.AdjustStockRequest{
		Delta: 1, Notes: "stocktake correction",
	})
	assert.EqualError(t, err, "product not found")
}

func TestProductUpdate(t *testing.T) {
	svc, products, _ := newProductFixture()
	p := products.add(&model.Product{
		Name: "Cash drawer", SKU: "DRW-1", Category: "hardware",
		UnitPrice: decimal.NewFromInt(90), Stock: 3, MinStock: 1,
	})
	products.add(&model.Product{
		Name: "Cash drawer XL", SKU: "DRW-2", Category: "hardware",
		UnitPrice: decimal.NewFromInt(120),
	})

	newName := "Cash drawer compact"
	resp, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Cash drawer compact", resp.Name)
	assert.Equal(t, 3, resp.Stock) // updates never touch stock

	taken := "DRW-2"
	_, err = svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{SKU: &taken})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sku "DRW-2" already in use`)

	negative := decimal.NewFromInt(-1)
	_, err = svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{UnitPrice: &negative})
	assert.EqualError(t, err, "unit_price must be >= 0")
}

func TestProductDelete(t *testing.T) {
	svc, products, _ := newProductFixture()
	p := products.add(&model.Product{
		Name: "Scanner", SKU: "SCN-1", Category: "hardware", UnitPrice: decimal.NewFromInt(300),
	})

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.Empty(t, products.products)

	assert.EqualError(t, svc.Delete(context.Background(), p.ID), "product not found")
}
