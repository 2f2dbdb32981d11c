package repository

import (
	"context"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.TradeFilter) ([]model.Sale, int64, error)

	// ListRange returns completed sales with items+customer preloaded inside
	// [from, to] for the report aggregator.
	ListRange(ctx context.Context, from, to time.Time) ([]model.Sale, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items.Product").Preload("Customer").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.TradeFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	q = applyTradeFilter(q, filter)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Product").Preload("Customer").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) ListRange(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at BETWEEN ? AND ?", model.SaleStatusCompleted, from, to).
		Preload("Items.Product").Preload("Customer").
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

// applyTradeFilter is shared by sale and purchase listings. Date bounds are
// inclusive UTC day boundaries.
func applyTradeFilter(q *gorm.DB, filter dto.TradeFilter) *gorm.DB {
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		if from, err := time.ParseInLocation("2006-01-02", filter.DateFrom, time.UTC); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if filter.DateTo != "" {
		if to, err := time.ParseInLocation("2006-01-02", filter.DateTo, time.UTC); err == nil {
			end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999000000, time.UTC)
			q = q.Where("created_at <= ?", end)
		}
	}
	return q
}
