package dto

import "github.com/shopspring/decimal"

// Sales and purchases share the same creation protocol: a counterpart id plus
// a cart of {product_id, qty, unit_price} tuples accumulated client-side.

// ─── Cart ────────────────────────────────────────────────────────────────────

type CartItem struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Qty       int             `json:"qty"        validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
}

// CartTotal computes Σ(qty × unit_price) over the cart.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return total
}

// ─── Sales ───────────────────────────────────────────────────────────────────

type CreateSaleRequest struct {
	CustomerID string     `json:"customer_id" validate:"required,uuid"`
	Items      []CartItem `json:"items"       validate:"required,min=1,dive"`
}

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID           string             `json:"id"`
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	Status       string             `json:"status"`
	Total        decimal.Decimal    `json:"total"`
	Items        []SaleItemResponse `json:"items"`
	CreatedAt    string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Purchases ───────────────────────────────────────────────────────────────

type CreatePurchaseRequest struct {
	SupplierID string     `json:"supplier_id" validate:"required,uuid"`
	Items      []CartItem `json:"items"       validate:"required,min=1,dive"`
}

type PurchaseItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type PurchaseResponse struct {
	ID           string                 `json:"id"`
	SupplierID   string                 `json:"supplier_id"`
	SupplierName string                 `json:"supplier_name"`
	Status       string                 `json:"status"`
	Total        decimal.Decimal        `json:"total"`
	Items        []PurchaseItemResponse `json:"items"`
	CreatedAt    string                 `json:"created_at"`
}

type PurchaseListResponse struct {
	Data  []PurchaseResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ─── Filters ─────────────────────────────────────────────────────────────────

// TradeFilter covers both sale and purchase listings. DateFrom/DateTo are
// inclusive day boundaries ("2024-01-01" matches the whole UTC day).
type TradeFilter struct {
	Status   string `form:"status"`
	DateFrom string `form:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   validate:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}
