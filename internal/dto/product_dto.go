package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name       string          `json:"name"        validate:"required,min=2,max=120"`
	SKU        string          `json:"sku"         validate:"required,min=2,max=40"`
	Category   string          `json:"category"    validate:"required"`
	SupplierID *string         `json:"supplier_id" validate:"omitempty,uuid"`
	UnitPrice  decimal.Decimal `json:"unit_price"  validate:"min=0"`
	Stock      int             `json:"stock"       validate:"min=0"`
	MinStock   int             `json:"min_stock"   validate:"min=0"`
}

// UpdateProductRequest deliberately has no stock field: stock only moves
// through sale/purchase items and explicit adjustments.
type UpdateProductRequest struct {
	Name       *string          `json:"name"        validate:"omitempty,min=2,max=120"`
	SKU        *string          `json:"sku"         validate:"omitempty,min=2,max=40"`
	Category   *string          `json:"category"`
	SupplierID *string          `json:"supplier_id" validate:"omitempty,uuid"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	MinStock   *int             `json:"min_stock"   validate:"omitempty,min=0"`
}

type AdjustStockRequest struct {
	Delta int    `json:"delta" validate:"required"`
	Notes string `json:"notes" validate:"required,min=3,max=200"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name       string `form:"name"`
	SKU        string `form:"sku"`
	Category   string `form:"category"`
	SupplierID string `form:"supplier_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	SupplierID   *string         `json:"supplier_id"`
	SupplierName *string         `json:"supplier_name,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"min_stock"`
	CreatedAt    string          `json:"created_at"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// LowStockAlertResponse is one row of the low-stock view, stock ascending.
type LowStockAlertResponse struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
	StockStatus string `json:"stock_status"` // OUT_OF_STOCK | LOW_STOCK
}

type StockMovementResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	StockBefore int    `json:"stock_before"`
	StockAfter  int    `json:"stock_after"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at"`
}

type MovementFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}
