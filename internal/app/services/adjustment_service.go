package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stocklens/warehouse-core/internal/app/errors"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"github.com/stocklens/warehouse-core/internal/app/pkg"
	"github.com/stocklens/warehouse-core/internal/app/repositories"
)

type AdjustmentService struct {
	audits      repositories.AuditStore
	adjustments repositories.AdjustmentStore
	products    repositories.ProductStore
	now         func() time.Time
}

func NewAdjustmentService(audits repositories.AuditStore, adjustments repositories.AdjustmentStore, products repositories.ProductStore) *AdjustmentService {
	return &AdjustmentService{
		audits:      audits,
		adjustments: adjustments,
		products:    products,
		now:         time.Now,
	}
}

// CreateFromAudit converts a reviewed audit's variance set into a pending
// stock adjustment. One line per nonzero quantity variance; a corrected
// safety stock rides on a line only when that item's safety stock
// mismatched. Location mismatches are applied straight to the product master
// and are not part of the adjustment's approval lifecycle.
func (s *AdjustmentService) CreateFromAudit(ctx context.Context, auditID string, actor models.Actor) (*models.Adjustment, error) {
	id, err := uuid.Parse(auditID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid audit ID format")
	}

	audit, err := s.audits.GetAudit(ctx, id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrNotFound) {
			return nil, errors.NewNotFoundError("Audit not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get audit")
	}

	if audit.Status != models.AuditStatusReview {
		return nil, errors.NewConflictError(fmt.Sprintf("Audit %s is not in review", audit.AuditNo))
	}
	if audit.AdjustmentID != nil {
		return nil, errors.NewConflictError(fmt.Sprintf("Audit %s already has an adjustment", audit.AuditNo))
	}

	items, err := s.audits.ListItems(ctx, audit.ID)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list audit items")
	}

	var varianceItems, locationItems []models.AuditItem
	for _, item := range items {
		if item.IsCounted && item.Variance != 0 {
			varianceItems = append(varianceItems, item)
		}
		if item.LocationMatch == models.MatchMismatched && item.ActualLocation != nil && *item.ActualLocation != "" {
			locationItems = append(locationItems, item)
		}
	}

	if len(varianceItems) == 0 && len(locationItems) == 0 {
		return nil, errors.NewNothingToAdjustError("Audit found nothing to adjust")
	}

	now := s.now()
	note := fmt.Sprintf("Stock adjustment from audit %s", audit.AuditNo)
	adjustment := &models.Adjustment{
		AdjustNo:  pkg.AdjustmentNumber(now),
		Status:    models.AdjustmentStatusPending,
		Note:      &note,
		CreatedBy: actor.ID,
	}

	if err := s.adjustments.CreateAdjustment(ctx, adjustment); err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create adjustment")
	}

	if len(varianceItems) > 0 {
		lines := make([]models.AdjustmentItem, 0, len(varianceItems))
		for _, item := range varianceItems {
			var newSafetyStock *int64
			if item.SafetyStockMatch == models.MatchMismatched && item.CountedSafetyStock != nil {
				newSafetyStock = item.CountedSafetyStock
			}
			lines = append(lines, models.AdjustmentItem{
				AdjustmentID:   adjustment.ID,
				ProductID:      item.ProductID,
				QtyDelta:       item.Variance,
				NewSafetyStock: newSafetyStock,
			})
		}
		if err := s.adjustments.CreateAdjustmentItems(ctx, lines); err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to create adjustment items")
		}
		adjustment.Items = lines
	}

	// Location corrections are immediate and unconditional; the adjustment's
	// own approval does not gate them.
	for _, item := range locationItems {
		if err := s.products.UpdateStorageLocation(ctx, item.ProductID, *item.ActualLocation); err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to correct storage location")
		}
	}

	audit.AdjustmentID = &adjustment.ID
	if err := s.audits.UpdateAudit(ctx, audit); err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to link adjustment to audit")
	}

	return adjustment, nil
}

func (s *AdjustmentService) GetAdjustment(ctx context.Context, adjustmentID string) (*models.Adjustment, error) {
	id, err := uuid.Parse(adjustmentID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid adjustment ID format")
	}

	adjustment, err := s.adjustments.GetAdjustment(ctx, id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrNotFound) {
			return nil, errors.NewNotFoundError("Adjustment not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get adjustment")
	}
	return adjustment, nil
}
