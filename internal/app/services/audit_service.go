package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stocklens/warehouse-core/internal/app/errors"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"github.com/stocklens/warehouse-core/internal/app/pkg"
	"github.com/stocklens/warehouse-core/internal/app/repositories"
	"github.com/stocklens/warehouse-core/internal/infrastructures"
)

type AuditService struct {
	audits    repositories.AuditStore
	products  repositories.ProductStore
	scope     *ScopeService
	validator *infrastructures.Validator
	now       func() time.Time
}

func NewAuditService(audits repositories.AuditStore, products repositories.ProductStore, scope *ScopeService, validator *infrastructures.Validator) *AuditService {
	return &AuditService{
		audits:    audits,
		products:  products,
		scope:     scope,
		validator: validator,
		now:       time.Now,
	}
}

// CreateAudit resolves the scope, freezes the baseline snapshot, and brings
// the audit up in in_progress. Header and items are created two-phase: the
// header is inserted as draft (not visible to list views), items follow, and
// only then is the header flipped to in_progress with its item count. Any
// failure after the header insert triggers a compensating delete so a header
// without items never becomes visible.
func (s *AuditService) CreateAudit(ctx context.Context, req *models.AuditCreateRequest, actor models.Actor) (*models.Audit, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	products, err := s.scope.ResolveScope(ctx, req.AuditType, req.ScopeFilter)
	if err != nil {
		return nil, err
	}

	assignedTo := make([]uuid.UUID, 0, len(req.AssignedTo))
	for _, raw := range req.AssignedTo {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return nil, errors.NewBadRequestError("Invalid auditor ID format")
		}
		assignedTo = append(assignedTo, id)
	}

	now := s.now()
	audit := &models.Audit{
		AuditNo:     pkg.AuditNumber(now),
		Status:      models.AuditStatusDraft,
		AuditType:   req.AuditType,
		ScopeFilter: req.ScopeFilter,
		AssignedTo:  assignedTo,
		Note:        req.Note,
		FrozenAt:    &now,
		CreatedBy:   actor.ID,
	}

	if err := s.audits.CreateAudit(ctx, audit); err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create audit")
	}

	productIDs := make([]uuid.UUID, 0, len(products))
	for _, product := range products {
		productIDs = append(productIDs, product.ID)
	}

	balances, err := s.products.GetBalances(ctx, productIDs)
	if err != nil {
		s.discardDraft(ctx, audit)
		return nil, errors.NewInternalServerError(err, "Failed to read stock balances")
	}

	items := make([]models.AuditItem, 0, len(products))
	for _, product := range products {
		// Missing balances freeze as zero on-hand, zero safety stock.
		balance := balances[product.ID]
		items = append(items, models.AuditItem{
			AuditID:           audit.ID,
			ProductID:         product.ID,
			SystemQty:         balance.OnHand,
			SystemSafetyStock: balance.SafetyStock,
			SystemLocation:    product.StorageLocation,
			ProductCategory:   product.ProductCategory,
			LocationMatch:     models.MatchUnknown,
			SafetyStockMatch:  models.MatchUnknown,
		})
	}

	if err := s.audits.CreateItems(ctx, items); err != nil {
		s.discardDraft(ctx, audit)
		return nil, errors.NewInternalServerError(err, "Failed to create audit items")
	}

	totalItems := len(items)
	audit.Status = models.AuditStatusInProgress
	audit.TotalItems = &totalItems

	if err := s.audits.UpdateAudit(ctx, audit); err != nil {
		s.discardDraft(ctx, audit)
		return nil, errors.NewInternalServerError(err, "Failed to activate audit")
	}

	return audit, nil
}

// discardDraft removes the draft header after a failed two-phase create. A
// failed delete leaves an orphan behind; it stays invisible to list views,
// but the leak must show up in the logs.
func (s *AuditService) discardDraft(ctx context.Context, audit *models.Audit) {
	if err := s.audits.DeleteAudit(ctx, audit.ID); err != nil {
		logrus.Errorf("failed to discard draft audit %s (%s): %v", audit.ID, audit.AuditNo, err)
	}
}

func (s *AuditService) GetAudit(ctx context.Context, auditID string) (*models.Audit, error) {
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
	return audit, nil
}

func (s *AuditService) GetAuditItems(ctx context.Context, auditID string) ([]models.AuditItem, error) {
	audit, err := s.GetAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}

	items, err := s.audits.ListItems(ctx, audit.ID)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list audit items")
	}
	return items, nil
}

func (s *AuditService) ListAudits(ctx context.Context, pagination *models.PaginationRequest, status *models.AuditStatus) (*models.Pagination[[]models.Audit], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	audits, totalItems, err := s.audits.ListAudits(ctx, status, pagination.Page, pagination.Limit)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list audits")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.Audit]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      audits,
	}, nil
}

// ListAssignedAudits returns the in_progress audits the actor may count.
func (s *AuditService) ListAssignedAudits(ctx context.Context, actor models.Actor) ([]models.Audit, error) {
	audits, err := s.audits.ListAssignedAudits(ctx, actor.ID)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list assigned audits")
	}
	return audits, nil
}

// SubmitForReview moves an audit from in_progress to review and persists the
// authoritative accuracy computation. The persisted metrics are frozen from
// this point on; they are never recomputed for a reviewed audit.
func (s *AuditService) SubmitForReview(ctx context.Context, auditID string, actor models.Actor) (*models.Audit, error) {
	audit, err := s.GetAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}

	if err := guardTransition(audit, models.AuditStatusReview); err != nil {
		return nil, err
	}

	items, err := s.audits.ListItems(ctx, audit.ID)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list audit items")
	}

	summary := ComputeAccuracy(items)
	if summary.CountedItems == 0 {
		return nil, errors.NewNothingCountedError("No items have been counted yet")
	}

	// total_items is a materialized view over the item set: recompute it
	// here rather than trust the value written at creation.
	totalItems := len(items)
	audit.Status = models.AuditStatusReview
	audit.TotalItems = &totalItems
	audit.TotalVariance = &summary.TotalVariance
	audit.AccuracyPercent = &summary.QuantityAccuracy
	audit.LocationAccuracyPercent = summary.LocationAccuracy
	audit.SafetyStockAccuracyPercent = summary.SafetyStockAccuracy
	audit.TotalLocationMismatches = &summary.LocationMismatches
	audit.TotalSafetyStockMismatches = &summary.SafetyStockMismatches

	if err := s.audits.UpdateAudit(ctx, audit); err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to submit audit for review")
	}
	return audit, nil
}

// CompleteAudit closes out a reviewed audit whose adjustment has been
// generated. The adjustment must exist first; completion only records who
// reviewed and when.
func (s *AuditService) CompleteAudit(ctx context.Context, auditID string, actor models.Actor) (*models.Audit, error) {
	audit, err := s.GetAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}

	if err := guardTransition(audit, models.AuditStatusCompleted); err != nil {
		return nil, err
	}
	if audit.AdjustmentID == nil {
		return nil, errors.NewConflictError("Audit has no adjustment; create one or close the audit instead")
	}

	now := s.now()
	audit.Status = models.AuditStatusCompleted
	audit.CompletedAt = &now
	audit.ReviewedBy = &actor.ID
	audit.ReviewedAt = &now

	if err := s.audits.UpdateAudit(ctx, audit); err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to complete audit")
	}
	return audit, nil
}

// CloseAudit ends a reviewed audit without corrective action.
func (s *AuditService) CloseAudit(ctx context.Context, auditID string, actor models.Actor) (*models.Audit, error) {
	audit, err := s.GetAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}

	if err := guardTransition(audit, models.AuditStatusClosed); err != nil {
		return nil, err
	}

	audit.Status = models.AuditStatusClosed

	if err := s.audits.UpdateAudit(ctx, audit); err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to close audit")
	}
	return audit, nil
}

// guardTransition rejects lifecycle moves from an illegal source state in one
// place, so terminal states are truly terminal regardless of the caller.
func guardTransition(audit *models.Audit, to models.AuditStatus) error {
	if !models.CanTransition(audit.Status, to) {
		return errors.NewConflictError(fmt.Sprintf("Audit %s cannot move from %s to %s", audit.AuditNo, audit.Status, to))
	}
	return nil
}
