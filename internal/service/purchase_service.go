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
	"gorm.io/gorm"
)

type PurchaseService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	List(ctx context.Context, filter dto.TradeFilter) (*dto.PurchaseListResponse, error)
}

type purchaseService struct {
	repo         repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	moves        repository.StockMovementRepository
	cache        *ListCache
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	moves repository.StockMovementRepository,
	cache *ListCache,
) PurchaseService {
	return &purchaseService{
		repo:         repo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		moves:        moves,
		cache:        cache,
	}
}

// Create mirrors the sale transaction with the stock arithmetic inverted:
// received items increment stock.
func (s *purchaseService) Create(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("cart is empty")
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, errors.New("invalid supplier_id")
	}
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, errors.New("supplier not found")
	}

	purchase := model.Purchase{
		SupplierID: supplierID,
		UserID:     userID,
		Status:     model.PurchaseStatusReceived,
		Total:      dto.CartTotal(req.Items),
	}
	productNames := make(map[uuid.UUID]string, len(req.Items))

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return fmt.Errorf("invalid product_id %q", item.ProductID)
			}
			purchase.Items = append(purchase.Items, model.PurchaseItem{
				ProductID: pid,
				Qty:       item.Qty,
				UnitPrice: item.UnitPrice,
			})
		}

		if err := s.repo.Create(ctx, tx, &purchase); err != nil {
			return err
		}

		for _, item := range purchase.Items {
			before, err := s.productRepo.FindByIDTx(orDB(tx, s.productRepo.DB()), item.ProductID)
			if err != nil {
				return fmt.Errorf("product %s not found", item.ProductID)
			}
			productNames[item.ProductID] = before.Name

			if _, err := s.productRepo.AdjustStockTx(orDB(tx, s.productRepo.DB()), item.ProductID, item.Qty); err != nil {
				return fmt.Errorf("adjusting stock of %s: %w", before.Name, err)
			}

			ref := purchase.ID
			mov := &model.StockMovement{
				ProductID:   item.ProductID,
				Type:        model.MovementPurchase,
				Quantity:    item.Qty,
				StockBefore: before.Stock,
				StockAfter:  before.Stock + item.Qty,
				Notes:       fmt.Sprintf("Purchase %s", purchase.ID),
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

	s.cache.Invalidate(ctx, CacheProducts)

	resp := purchaseToResponse(&purchase)
	resp.SupplierName = supplier.Name
	for i := range resp.Items {
		resp.Items[i].ProductName = productNames[purchase.Items[i].ProductID]
	}
	return resp, nil
}

func (s *purchaseService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	purchase, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("purchase not found")
	}
	return purchaseToResponse(purchase), nil
}

func (s *purchaseService) List(ctx context.Context, filter dto.TradeFilter) (*dto.PurchaseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	purchases, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		items = append(items, *purchaseToResponse(&purchases[i]))
	}
	return &dto.PurchaseListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func purchaseToResponse(p *model.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.PurchaseItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: name,
			Qty:         item.Qty,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.UnitPrice.Mul(decimalFromInt(item.Qty)),
		})
	}
	supplierName := ""
	if p.Supplier != nil {
		supplierName = p.Supplier.Name
	}
	return &dto.PurchaseResponse{
		ID:           p.ID.String(),
		SupplierID:   p.SupplierID.String(),
		SupplierName: supplierName,
		Status:       p.Status,
		Total:        p.Total,
		Items:        items,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
