package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/model"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.TradeFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo         repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	moves        repository.StockMovementRepository
	cache        *ListCache
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	moves repository.StockMovementRepository,
	cache *ListCache,
) SaleService {
	return &saleService{
		repo:         repo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		moves:        moves,
		cache:        cache,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ────────────────────────────────────────────────────────────────────
// One ACID transaction: header + items + stock decrements + movement rows all
// commit or none do. The cart's unit_price is the snapshot written to the
// item — later catalog price changes never rewrite a sale.

func (s *saleService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	// Local validation before any DB work, mirroring the form-level checks.
	if len(req.Items) == 0 {
		return nil, errors.New("cart is empty")
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, errors.New("invalid customer_id")
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, errors.New("customer not found")
	}

	sale := model.Sale{
		CustomerID: customerID,
		UserID:     userID,
		Status:     model.SaleStatusCompleted,
		Total:      dto.CartTotal(req.Items),
	}
	productNames := make(map[uuid.UUID]string, len(req.Items))

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return fmt.Errorf("invalid product_id %q", item.ProductID)
			}
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID: pid,
				Qty:       item.Qty,
				UnitPrice: item.UnitPrice,
			})
		}

		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		for _, item := range sale.Items {
			before, err := s.productRepo.FindByIDTx(orDB(tx, s.productRepo.DB()), item.ProductID)
			if err != nil {
				return fmt.Errorf("product %s not found", item.ProductID)
			}
			productNames[item.ProductID] = before.Name

			rows, err := s.productRepo.AdjustStockTx(orDB(tx, s.productRepo.DB()), item.ProductID, -item.Qty)
			if err != nil {
				return fmt.Errorf("adjusting stock of %s: %w", before.Name, err)
			}
			if rows == 0 {
				return fmt.Errorf("insufficient stock for %s (%d on hand, %d requested)",
					before.Name, before.Stock, item.Qty)
			}

			ref := sale.ID
			mov := &model.StockMovement{
				ProductID:   item.ProductID,
				Type:        model.MovementSale,
				Quantity:    -item.Qty,
				StockBefore: before.Stock,
				StockAfter:  before.Stock - item.Qty,
				Notes:       fmt.Sprintf("Sale %s", sale.ID),
				ReferenceID: &ref,
			}
			if err := s.moves.CreateTx(orDB(tx, s.productRepo.DB()), mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// The sale touched both the sales list and product stock levels.
	s.cache.Invalidate(ctx, CacheProducts)

	resp := saleToResponse(&sale)
	resp.CustomerName = customer.Name
	for i := range resp.Items {
		resp.Items[i].ProductName = productNames[sale.Items[i].ProductID]
	}
	return resp, nil
}

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sale not found")
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context, filter dto.TradeFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// orDB returns tx when inside a transaction, else the fallback handle (nil in
// unit tests, where repo stubs ignore it).
func orDB(tx *gorm.DB, fallback *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return fallback
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func saleToResponse(v *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.SaleItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: name,
			Qty:         item.Qty,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.UnitPrice.Mul(decimalFromInt(item.Qty)),
		})
	}
	customerName := ""
	if v.Customer != nil {
		customerName = v.Customer.Name
	}
	return &dto.SaleResponse{
		ID:           v.ID.String(),
		CustomerID:   v.CustomerID.String(),
		CustomerName: customerName,
		Status:       v.Status,
		Total:        v.Total,
		Items:        items,
		CreatedAt:    v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
