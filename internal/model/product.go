package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock status values for the low-stock projection.
const (
	StockStatusOut = "OUT_OF_STOCK"
	StockStatusLow = "LOW_STOCK"
)

// Product is the catalog entity. SKU is human-assigned and unique.
// Stock is never written directly by a product update: it only moves through
// sale/purchase item inserts and explicit stock adjustments, each of which
// appends a StockMovement row.
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string          `gorm:"index;not null"`
	SKU        string          `gorm:"column:sku;uniqueIndex;not null"`
	Category   string          `gorm:"not null"`
	SupplierID *uuid.UUID      `gorm:"type:uuid;index"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock      int             `gorm:"not null;default:0"`
	MinStock   int             `gorm:"not null;default:5"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

// StockStatus classifies the product for the low-stock view.
func (p *Product) StockStatus() string {
	if p.Stock <= 0 {
		return StockStatusOut
	}
	return StockStatusLow
}
