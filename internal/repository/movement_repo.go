package repository

import (
	"context"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/model"

	"gorm.io/gorm"
)

// StockMovementRepository is append-only from the service layer's point of
// view: rows are created inside trade/adjustment transactions and never
// updated or deleted.
type StockMovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	List(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, error)
	ListRange(ctx context.Context, from, to time.Time) ([]model.StockMovement, error)
}

type movementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &movementRepo{db: db}
}

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *movementRepo) List(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, error) {
	var movements []model.StockMovement

	q := r.db.WithContext(ctx).Model(&model.StockMovement{})
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	err := q.Preload("Product").Order("created_at DESC").Limit(limit).Find(&movements).Error
	return movements, err
}

func (r *movementRepo) ListRange(ctx context.Context, from, to time.Time) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", from, to).
		Preload("Product").
		Order("created_at ASC").
		Find(&movements).Error
	return movements, err
}
