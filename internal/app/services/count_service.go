package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stocklens/warehouse-core/internal/app/errors"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"github.com/stocklens/warehouse-core/internal/app/repositories"
	"github.com/stocklens/warehouse-core/internal/infrastructures"
)

type CountService struct {
	audits    repositories.AuditStore
	validator *infrastructures.Validator
	now       func() time.Time
}

func NewCountService(audits repositories.AuditStore, validator *infrastructures.Validator) *CountService {
	return &CountService{
		audits:    audits,
		validator: validator,
		now:       time.Now,
	}
}

// SaveCount records one blind count against an audit item. Variance is always
// recomputed from the frozen system quantity at write time; it is never
// settable by the caller. Re-submitting overwrites the previous count fields
// (last write wins) while the count log keeps every submission. Items of a
// completed or closed audit no longer accept counts.
func (s *CountService) SaveCount(ctx context.Context, auditItemID string, req *models.CountSubmitRequest, actor models.Actor) (*models.AuditItem, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	locationMatch := *req.LocationMatch
	var actualLocation *string
	if !locationMatch {
		if req.ActualLocation == nil || strings.TrimSpace(*req.ActualLocation) == "" {
			return nil, errors.NewBadRequestError("Actual location is required when the stored location does not match")
		}
		trimmed := strings.TrimSpace(*req.ActualLocation)
		actualLocation = &trimmed
	}

	itemID, err := uuid.Parse(auditItemID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid audit item ID format")
	}

	item, err := s.audits.GetItem(ctx, itemID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrNotFound) {
			return nil, errors.NewNotFoundError("Audit item not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get audit item")
	}

	audit, err := s.audits.GetAudit(ctx, item.AuditID)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audit")
	}
	if audit.IsTerminal() {
		return nil, errors.NewConflictError(fmt.Sprintf("Audit %s is %s; counts are frozen", audit.AuditNo, audit.Status))
	}

	countedQty := *req.CountedQty
	now := s.now()

	item.CountedQty = countedQty
	item.Variance = countedQty - item.SystemQty
	item.IsCounted = true
	item.CountedBy = &actor.ID
	item.CountedAt = &now

	if locationMatch {
		item.LocationMatch = models.MatchMatched
		item.ActualLocation = nil
	} else {
		item.LocationMatch = models.MatchMismatched
		item.ActualLocation = actualLocation
	}

	// Safety stock is checked by exact equality, no tolerance band.
	item.CountedSafetyStock = req.CountedSafetyStock
	if req.CountedSafetyStock == nil {
		item.SafetyStockMatch = models.MatchUnknown
	} else if *req.CountedSafetyStock == item.SystemSafetyStock {
		item.SafetyStockMatch = models.MatchMatched
	} else {
		item.SafetyStockMatch = models.MatchMismatched
	}

	if err := s.audits.UpdateItemCount(ctx, item); err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to save count")
	}

	log := &models.CountLog{
		AuditItemID:        item.ID,
		LogType:            models.CountLogTypeCount,
		CountedQty:         countedQty,
		ActualLocation:     item.ActualLocation,
		CountedSafetyStock: req.CountedSafetyStock,
		CountedBy:          actor.ID,
		CountedAt:          now,
	}
	if err := s.audits.AppendCountLog(ctx, log); err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to append count log")
	}

	return item, nil
}

// GetCountLogs returns the full submission trail for one audit item, oldest
// first.
func (s *CountService) GetCountLogs(ctx context.Context, auditItemID string) ([]models.CountLog, error) {
	itemID, err := uuid.Parse(auditItemID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid audit item ID format")
	}

	logs, err := s.audits.ListCountLogs(ctx, itemID)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list count logs")
	}
	return logs, nil
}
