package repository

import (
	"context"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinancialSnapshot is the single-row dashboard aggregate, computed by SQL
// aggregates rather than loading rows into memory.
type FinancialSnapshot struct {
	TotalSalesCompleted    decimal.Decimal
	TotalPurchasesReceived decimal.Decimal
	InventoryValue         decimal.Decimal
	AvailableProductCount  int64
	OutOfStockCount        int64
}

type SnapshotRepository interface {
	Financial(ctx context.Context) (*FinancialSnapshot, error)
}

type snapshotRepo struct{ db *gorm.DB }

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository { return &snapshotRepo{db: db} }

func (r *snapshotRepo) Financial(ctx context.Context) (*FinancialSnapshot, error) {
	snap := &FinancialSnapshot{}
	db := r.db.WithContext(ctx)

	var salesTotal decimal.NullDecimal
	if err := db.Model(&model.Sale{}).
		Where("status = ?", model.SaleStatusCompleted).
		Select("SUM(total)").Scan(&salesTotal).Error; err != nil {
		return nil, err
	}
	snap.TotalSalesCompleted = salesTotal.Decimal

	var purchasesTotal decimal.NullDecimal
	if err := db.Model(&model.Purchase{}).
		Where("status = ?", model.PurchaseStatusReceived).
		Select("SUM(total)").Scan(&purchasesTotal).Error; err != nil {
		return nil, err
	}
	snap.TotalPurchasesReceived = purchasesTotal.Decimal

	var inventoryValue decimal.NullDecimal
	if err := db.Model(&model.Product{}).
		Select("SUM(unit_price * stock)").Scan(&inventoryValue).Error; err != nil {
		return nil, err
	}
	snap.InventoryValue = inventoryValue.Decimal

	if err := db.Model(&model.Product{}).
		Where("stock > 0").Count(&snap.AvailableProductCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).
		Where("stock <= 0").Count(&snap.OutOfStockCount).Error; err != nil {
		return nil, err
	}

	return snap, nil
}
