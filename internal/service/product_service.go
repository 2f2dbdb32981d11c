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

// ProductService defines the business logic contract for the catalog.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustStock applies a signed delta and appends the audit movement in
	// one transaction.
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
}

type productService struct {
	repo  repository.ProductRepository
	moves repository.StockMovementRepository
	cache *ListCache
}

func NewProductService(repo repository.ProductRepository, moves repository.StockMovementRepository, cache *ListCache) ProductService {
	return &productService{repo: repo, moves: moves, cache: cache}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, fmt.Errorf("sku %q already in use", req.SKU)
	}

	p := &model.Product{
		Name:      req.Name,
		SKU:       req.SKU,
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
	}
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, errors.New("invalid supplier_id")
		}
		p.SupplierID = &sid
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, CacheProducts)
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	// Only the unfiltered first page is cached — it is what every screen
	// loads on mount.
	cacheable := filter.Name == "" && filter.SKU == "" && filter.Category == "" &&
		filter.SupplierID == "" && filter.Page <= 1

	if cacheable {
		var cached dto.ProductListResponse
		if s.cache.Get(ctx, CacheProducts, &cached) {
			return &cached, nil
		}
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProductListResponse{
		Data:  make([]dto.ProductResponse, 0, len(products)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range products {
		resp.Data = append(resp.Data, *productToResponse(&products[i]))
	}
	if filter.Limit > 0 {
		resp.TotalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}

	if cacheable {
		s.cache.Set(ctx, CacheProducts, resp)
	}
	return resp, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.SKU != nil && *req.SKU != p.SKU {
		if _, err := s.repo.FindBySKU(ctx, *req.SKU); err == nil {
			return nil, fmt.Errorf("sku %q already in use", *req.SKU)
		}
		p.SKU = *req.SKU
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, errors.New("unit_price must be >= 0")
		}
		p.UnitPrice = *req.UnitPrice
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.SupplierID != nil {
		if *req.SupplierID == "" {
			p.SupplierID = nil
		} else {
			sid, err := uuid.Parse(*req.SupplierID)
			if err != nil {
				return nil, errors.New("invalid supplier_id")
			}
			p.SupplierID = &sid
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, CacheProducts)
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("product not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, CacheProducts)
	return nil
}

func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	var updated *model.Product

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		before, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return errors.New("product not found")
		}

		rows, err := s.repo.AdjustStockTx(tx, id, req.Delta)
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("adjustment of %d would overdraw stock (%d on hand)", req.Delta, before.Stock)
		}

		mov := &model.StockMovement{
			ProductID:   id,
			Type:        model.MovementAdjustment,
			Quantity:    req.Delta,
			StockBefore: before.Stock,
			StockAfter:  before.Stock + req.Delta,
			Notes:       req.Notes,
		}
		if err := s.moves.CreateTx(tx, mov); err != nil {
			return err
		}

		before.Stock += req.Delta
		updated = before
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.Invalidate(ctx, CacheProducts)
	return productToResponse(updated), nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		SKU:       p.SKU,
		Category:  p.Category,
		UnitPrice: p.UnitPrice,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.SupplierID != nil {
		sid := p.SupplierID.String()
		resp.SupplierID = &sid
	}
	if p.Supplier != nil {
		resp.SupplierName = &p.Supplier.Name
	}
	return resp
}
