package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"gorm.io/gorm"
)

type GormProductRepo struct {
	db *gorm.DB
}

func NewGormProductRepo(db *gorm.DB) *GormProductRepo {
	return &GormProductRepo{db: db}
}

func (r *GormProductRepo) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("product_code ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepo) ListActiveByCategories(ctx context.Context, categories []string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND product_category IN ?", true, categories).
		Order("product_code ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListActiveByLocations matches storage locations loosely: a product matches
// when its location contains any of the supplied tokens, case-insensitive.
// Physical location strings are freeform, so partial matching is intentional.
func (r *GormProductRepo) ListActiveByLocations(ctx context.Context, tokens []string) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)

	location := r.db.Session(&gorm.Session{NewDB: true})
	for _, token := range tokens {
		location = location.Or("storage_location ILIKE ?", "%"+token+"%")
	}
	query = query.Where(location)

	var products []models.Product
	if err := query.Order("product_code ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepo) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND id IN ?", true, ids).
		Order("product_code ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepo) GetBalances(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.StockBalance, error) {
	var balances []models.StockBalance
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", ids).
		Find(&balances).Error
	if err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID]models.StockBalance, len(balances))
	for _, balance := range balances {
		result[balance.ProductID] = balance
	}
	return result, nil
}

func (r *GormProductRepo) UpdateStorageLocation(ctx context.Context, productID uuid.UUID, location string) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("storage_location", location).Error
}

func (r *GormProductRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ? AND product_category IS NOT NULL", true).
		Distinct("product_category").
		Order("product_category ASC").
		Pluck("product_category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormProductRepo) DistinctLocations(ctx context.Context) ([]string, error) {
	var locations []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ? AND storage_location IS NOT NULL", true).
		Distinct("storage_location").
		Order("storage_location ASC").
		Pluck("storage_location", &locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}
