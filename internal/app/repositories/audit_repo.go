package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"gorm.io/gorm"
)

type GormAuditRepo struct {
	db *gorm.DB
}

func NewGormAuditRepo(db *gorm.DB) *GormAuditRepo {
	return &GormAuditRepo{db: db}
}

func (r *GormAuditRepo) CreateAudit(ctx context.Context, audit *models.Audit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *GormAuditRepo) UpdateAudit(ctx context.Context, audit *models.Audit) error {
	return r.db.WithContext(ctx).Save(audit).Error
}

func (r *GormAuditRepo) DeleteAudit(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Audit{}).Error
}

func (r *GormAuditRepo) GetAudit(ctx context.Context, id uuid.UUID) (*models.Audit, error) {
	var audit models.Audit
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&audit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &audit, nil
}

// ListAudits never returns draft headers: draft only exists inside the
// two-phase create and must stay invisible to list views.
func (r *GormAuditRepo) ListAudits(ctx context.Context, status *models.AuditStatus, page, limit int) ([]models.Audit, int64, error) {
	countQuery := r.db.WithContext(ctx).Model(&models.Audit{}).
		Where("status <> ?", models.AuditStatusDraft)
	if status != nil {
		countQuery = countQuery.Where("status = ?", *status)
	}

	var totalItems int64
	if err := countQuery.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Where("status <> ?", models.AuditStatusDraft).
		Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset := (page - 1) * limit; offset > 0 {
		query = query.Offset(offset)
	}

	var audits []models.Audit
	if err := query.Find(&audits).Error; err != nil {
		return nil, 0, err
	}
	return audits, totalItems, nil
}

func (r *GormAuditRepo) ListAuditsByStatuses(ctx context.Context, statuses []models.AuditStatus) ([]models.Audit, error) {
	var audits []models.Audit
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&audits).Error
	if err != nil {
		return nil, err
	}
	return audits, nil
}

func (r *GormAuditRepo) ListAssignedAudits(ctx context.Context, auditorID uuid.UUID) ([]models.Audit, error) {
	var audits []models.Audit
	err := r.db.WithContext(ctx).
		Where("status = ? AND assigned_to @> ?", models.AuditStatusInProgress, fmt.Sprintf(`["%s"]`, auditorID)).
		Order("created_at DESC").
		Find(&audits).Error
	if err != nil {
		return nil, err
	}
	return audits, nil
}

func (r *GormAuditRepo) CreateItems(ctx context.Context, items []models.AuditItem) error {
	return r.db.WithContext(ctx).CreateInBatches(items, 200).Error
}

func (r *GormAuditRepo) GetItem(ctx context.Context, id uuid.UUID) (*models.AuditItem, error) {
	var item models.AuditItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormAuditRepo) ListItems(ctx context.Context, auditID uuid.UUID) ([]models.AuditItem, error) {
	var items []models.AuditItem
	err := r.db.WithContext(ctx).
		Where("audit_id = ?", auditID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItemCount writes only the count columns. The frozen baseline columns
// are deliberately absent from the update set.
func (r *GormAuditRepo) UpdateItemCount(ctx context.Context, item *models.AuditItem) error {
	return r.db.WithContext(ctx).
		Model(&models.AuditItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"counted_qty":          item.CountedQty,
			"variance":             item.Variance,
			"is_counted":           item.IsCounted,
			"counted_by":           item.CountedBy,
			"counted_at":           item.CountedAt,
			"location_match":       item.LocationMatch,
			"actual_location":      item.ActualLocation,
			"counted_safety_stock": item.CountedSafetyStock,
			"safety_stock_match":   item.SafetyStockMatch,
		}).Error
}

func (r *GormAuditRepo) AppendCountLog(ctx context.Context, log *models.CountLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *GormAuditRepo) ListCountLogs(ctx context.Context, auditItemID uuid.UUID) ([]models.CountLog, error) {
	var logs []models.CountLog
	err := r.db.WithContext(ctx).
		Where("audit_item_id = ?", auditItemID).
		Order("counted_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
