package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/format"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

// defaultReportDays is the window used when the request carries no bounds.
const defaultReportDays = 30

// ReportService turns raw rows into the uniform ReportResult shape the export
// and dashboard endpoints consume. Each report type owns its column set;
// columns are stable keys, not display labels.
type ReportService interface {
	Generate(ctx context.Context, req dto.ReportRequest) (*dto.ReportResult, error)
	FinancialSnapshot(ctx context.Context) (*dto.FinancialSnapshotResponse, error)
}

type reportService struct {
	products  repository.ProductRepository
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
	moves     repository.StockMovementRepository
	snapshots repository.SnapshotRepository
}

func NewReportService(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	purchases repository.PurchaseRepository,
	moves repository.StockMovementRepository,
	snapshots repository.SnapshotRepository,
) ReportService {
	return &reportService{
		products:  products,
		sales:     sales,
		purchases: purchases,
		moves:     moves,
		snapshots: snapshots,
	}
}

func (s *reportService) Generate(ctx context.Context, req dto.ReportRequest) (*dto.ReportResult, error) {
	switch req.Type {
	case dto.ReportInventory:
		return s.inventoryReport(ctx)
	case dto.ReportSales:
		from, to, err := reportRange(req)
		if err != nil {
			return nil, err
		}
		return s.salesReport(ctx, from, to)
	case dto.ReportPurchases:
		from, to, err := reportRange(req)
		if err != nil {
			return nil, err
		}
		return s.purchasesReport(ctx, from, to)
	case dto.ReportMovements:
		from, to, err := reportRange(req)
		if err != nil {
			return nil, err
		}
		return s.movementsReport(ctx, from, to)
	default:
		return nil, fmt.Errorf("unknown report type %q", req.Type)
	}
}

func (s *reportService) FinancialSnapshot(ctx context.Context) (*dto.FinancialSnapshotResponse, error) {
	snap, err := s.snapshots.Financial(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.FinancialSnapshotResponse{
		TotalSalesCompleted:    snap.TotalSalesCompleted,
		TotalPurchasesReceived: snap.TotalPurchasesReceived,
		InventoryValue:         snap.InventoryValue,
		AvailableProductCount:  snap.AvailableProductCount,
		OutOfStockCount:        snap.OutOfStockCount,
	}, nil
}

// reportRange resolves the request bounds, defaulting to the trailing
// defaultReportDays window when both are omitted.
func reportRange(req dto.ReportRequest) (time.Time, time.Time, error) {
	if req.DateFrom == "" && req.DateTo == "" {
		now := time.Now().UTC()
		from, to := format.DayRange(now.AddDate(0, 0, -defaultReportDays), now)
		return from, to, nil
	}
	fromStr, toStr := req.DateFrom, req.DateTo
	if fromStr == "" {
		fromStr = toStr
	}
	if toStr == "" {
		toStr = fromStr
	}
	return format.ParseDayRange(fromStr, toStr)
}

// The inventory report is a point-in-time snapshot; date bounds do not apply.
func (s *reportService) inventoryReport(ctx context.Context) (*dto.ReportResult, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	table := dto.ReportTable{
		Columns: []string{"sku", "name", "category", "stock", "min_stock", "unit_price", "stock_value"},
	}
	inventoryValue := decimal.Zero
	lowStock, outOfStock := 0, 0
	for i := range products {
		p := &products[i]
		value := p.UnitPrice.Mul(decimalFromInt(p.Stock))
		inventoryValue = inventoryValue.Add(value)
		if p.Stock <= 0 {
			outOfStock++
		} else if p.Stock <= p.MinStock {
			lowStock++
		}
		table.Rows = append(table.Rows, []string{
			p.SKU,
			p.Name,
			p.Category,
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.MinStock),
			format.CurrencyValue(p.UnitPrice),
			format.CurrencyValue(value),
		})
	}

	return &dto.ReportResult{
		Type: dto.ReportInventory,
		Summary: map[string]string{
			"total_products":  strconv.Itoa(len(products)),
			"inventory_value": format.CurrencyValue(inventoryValue),
			"low_stock":       strconv.Itoa(lowStock),
			"out_of_stock":    strconv.Itoa(outOfStock),
		},
		Table: table,
	}, nil
}

func (s *reportService) salesReport(ctx context.Context, from, to time.Time) (*dto.ReportResult, error) {
	sales, err := s.sales.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	table := dto.ReportTable{
		Columns: []string{"date", "customer", "status", "items", "total"},
	}
	revenue := decimal.Zero
	buckets := map[string]*dto.ChartPoint{}
	for i := range sales {
		sale := &sales[i]
		revenue = revenue.Add(sale.Total)
		addBucket(buckets, sale.CreatedAt, sale.Total)

		customer := ""
		if sale.Customer != nil {
			customer = sale.Customer.Name
		}
		table.Rows = append(table.Rows, []string{
			sale.CreatedAt.UTC().Format("2006-01-02"),
			customer,
			sale.Status,
			strconv.Itoa(len(sale.Items)),
			format.CurrencyValue(sale.Total),
		})
	}

	average := decimal.Zero
	if len(sales) > 0 {
		average = revenue.Div(decimalFromInt(len(sales)))
	}
	return &dto.ReportResult{
		Type: dto.ReportSales,
		Summary: map[string]string{
			"total_sales":   strconv.Itoa(len(sales)),
			"total_revenue": format.CurrencyValue(revenue),
			"average_sale":  format.CurrencyValue(average),
		},
		ChartData: sortBuckets(buckets),
		Table:     table,
	}, nil
}

func (s *reportService) purchasesReport(ctx context.Context, from, to time.Time) (*dto.ReportResult, error) {
	purchases, err := s.purchases.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	table := dto.ReportTable{
		Columns: []string{"date", "supplier", "status", "items", "total"},
	}
	spend := decimal.Zero
	buckets := map[string]*dto.ChartPoint{}
	for i := range purchases {
		purchase := &purchases[i]
		spend = spend.Add(purchase.Total)
		addBucket(buckets, purchase.CreatedAt, purchase.Total)

		supplier := ""
		if purchase.Supplier != nil {
			supplier = purchase.Supplier.Name
		}
		table.Rows = append(table.Rows, []string{
			purchase.CreatedAt.UTC().Format("2006-01-02"),
			supplier,
			purchase.Status,
			strconv.Itoa(len(purchase.Items)),
			format.CurrencyValue(purchase.Total),
		})
	}

	return &dto.ReportResult{
		Type: dto.ReportPurchases,
		Summary: map[string]string{
			"total_purchases": strconv.Itoa(len(purchases)),
			"total_spend":     format.CurrencyValue(spend),
		},
		ChartData: sortBuckets(buckets),
		Table:     table,
	}, nil
}

func (s *reportService) movementsReport(ctx context.Context, from, to time.Time) (*dto.ReportResult, error) {
	movements, err := s.moves.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	table := dto.ReportTable{
		Columns: []string{"date", "product", "type", "quantity", "stock_before", "stock_after", "notes"},
	}
	stockIn, stockOut := 0, 0
	buckets := map[string]*dto.ChartPoint{}
	for i := range movements {
		m := &movements[i]
		if m.Quantity >= 0 {
			stockIn += m.Quantity
		} else {
			stockOut += -m.Quantity
		}
		addBucket(buckets, m.CreatedAt, decimalFromInt(m.Quantity))

		product := ""
		if m.Product != nil {
			product = m.Product.Name
		}
		table.Rows = append(table.Rows, []string{
			m.CreatedAt.UTC().Format("2006-01-02"),
			product,
			m.Type,
			strconv.Itoa(m.Quantity),
			strconv.Itoa(m.StockBefore),
			strconv.Itoa(m.StockAfter),
			m.Notes,
		})
	}

	return &dto.ReportResult{
		Type: dto.ReportMovements,
		Summary: map[string]string{
			"total_movements": strconv.Itoa(len(movements)),
			"stock_in":        strconv.Itoa(stockIn),
			"stock_out":       strconv.Itoa(stockOut),
		},
		ChartData: sortBuckets(buckets),
		Table:     table,
	}, nil
}

// addBucket accumulates a row into its "2006-01" monthly bucket.
func addBucket(buckets map[string]*dto.ChartPoint, at time.Time, amount decimal.Decimal) {
	period := at.UTC().Format("2006-01")
	point, ok := buckets[period]
	if !ok {
		point = &dto.ChartPoint{Period: period}
		buckets[period] = point
	}
	point.Count++
	point.Amount = point.Amount.Add(amount)
}

func sortBuckets(buckets map[string]*dto.ChartPoint) []dto.ChartPoint {
	periods := make([]string, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}
	sort.Strings(periods)
	out := make([]dto.ChartPoint, 0, len(periods))
	for _, period := range periods {
		out = append(out, *buckets[period])
	}
	return out
}
