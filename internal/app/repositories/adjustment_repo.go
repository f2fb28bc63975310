package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"gorm.io/gorm"
)

type GormAdjustmentRepo struct {
	db *gorm.DB
}

func NewGormAdjustmentRepo(db *gorm.DB) *GormAdjustmentRepo {
	return &GormAdjustmentRepo{db: db}
}

func (r *GormAdjustmentRepo) CreateAdjustment(ctx context.Context, adjustment *models.Adjustment) error {
	return r.db.WithContext(ctx).Omit("Items").Create(adjustment).Error
}

func (r *GormAdjustmentRepo) CreateAdjustmentItems(ctx context.Context, items []models.AdjustmentItem) error {
	return r.db.WithContext(ctx).CreateInBatches(items, 200).Error
}

func (r *GormAdjustmentRepo) GetAdjustment(ctx context.Context, id uuid.UUID) (*models.Adjustment, error) {
	var adjustment models.Adjustment
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&adjustment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &adjustment, nil
}
