package dto

import "github.com/shopspring/decimal"

// Report types accepted by the aggregator.
const (
	ReportInventory = "inventory"
	ReportSales     = "sales"
	ReportPurchases = "purchases"
	ReportMovements = "movements"
)

type ReportRequest struct {
	Type     string `form:"type"      validate:"required,oneof=inventory sales purchases movements"`
	DateFrom string `form:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   validate:"omitempty,datetime=2006-01-02"`
}

// ReportTable is the tabular shape handed to CSV/PDF export. Columns are
// stable data keys in insertion order — display labels are a rendering
// concern, never part of the data.
type ReportTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ChartPoint is one bucket of the monthly time series.
type ChartPoint struct {
	Period string          `json:"period"` // "2024-01"
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// ReportResult is the uniform aggregator output.
type ReportResult struct {
	Type      string            `json:"type"`
	Summary   map[string]string `json:"summary"`
	ChartData []ChartPoint      `json:"chart_data"`
	Table     ReportTable       `json:"table"`
}

// FinancialSnapshotResponse is the single-row dashboard aggregate.
type FinancialSnapshotResponse struct {
	TotalSalesCompleted    decimal.Decimal `json:"total_sales_completed"`
	TotalPurchasesReceived decimal.Decimal `json:"total_purchases_received"`
	InventoryValue         decimal.Decimal `json:"inventory_value"`
	AvailableProductCount  int64           `json:"available_product_count"`
	OutOfStockCount        int64           `json:"out_of_stock_count"`
}
