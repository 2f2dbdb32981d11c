package service

import (
	"context"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/model"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/repository"
)

// InventoryService owns the read-side stock views: the low-stock alert list
// and the movement audit trail.
type InventoryService interface {
	LowStockAlerts(ctx context.Context) ([]dto.LowStockAlertResponse, error)
	Movements(ctx context.Context, filter dto.MovementFilter) ([]dto.StockMovementResponse, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	moves       repository.StockMovementRepository
}

func NewInventoryService(productRepo repository.ProductRepository, moves repository.StockMovementRepository) InventoryService {
	return &inventoryService{productRepo: productRepo, moves: moves}
}

func (s *inventoryService) LowStockAlerts(ctx context.Context) ([]dto.LowStockAlertResponse, error) {
	products, err := s.productRepo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlertResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		alerts = append(alerts, dto.LowStockAlertResponse{
			ProductID:   p.ID.String(),
			Name:        p.Name,
			SKU:         p.SKU,
			Stock:       p.Stock,
			MinStock:    p.MinStock,
			StockStatus: p.StockStatus(),
		})
	}
	return alerts, nil
}

func (s *inventoryService) Movements(ctx context.Context, filter dto.MovementFilter) ([]dto.StockMovementResponse, error) {
	movements, err := s.moves.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, movementToResponse(&movements[i]))
	}
	return out, nil
}

func movementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	name := ""
	if m.Product != nil {
		name = m.Product.Name
	}
	return dto.StockMovementResponse{
		ID:          m.ID.String(),
		ProductID:   m.ProductID.String(),
		ProductName: name,
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
