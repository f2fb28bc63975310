package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocklens/warehouse-core/internal/app/models"
)

// ErrNotFound is returned by all stores when the referenced row does not
// exist. Services translate it into the transport-level error.
var ErrNotFound = errors.New("record not found")

// AuditStore persists audit headers, their frozen items, and the append-only
// count log.
type AuditStore interface {
	CreateAudit(ctx context.Context, audit *models.Audit) error
	UpdateAudit(ctx context.Context, audit *models.Audit) error
	DeleteAudit(ctx context.Context, id uuid.UUID) error
	GetAudit(ctx context.Context, id uuid.UUID) (*models.Audit, error)
	ListAudits(ctx context.Context, status *models.AuditStatus, page, limit int) ([]models.Audit, int64, error)
	ListAuditsByStatuses(ctx context.Context, statuses []models.AuditStatus) ([]models.Audit, error)
	ListAssignedAudits(ctx context.Context, auditorID uuid.UUID) ([]models.Audit, error)

	CreateItems(ctx context.Context, items []models.AuditItem) error
	GetItem(ctx context.Context, id uuid.UUID) (*models.AuditItem, error)
	ListItems(ctx context.Context, auditID uuid.UUID) ([]models.AuditItem, error)
	UpdateItemCount(ctx context.Context, item *models.AuditItem) error

	AppendCountLog(ctx context.Context, log *models.CountLog) error
	ListCountLogs(ctx context.Context, auditItemID uuid.UUID) ([]models.CountLog, error)
}

// ProductStore reads the product master and stock balances, plus the single
// write the engine performs against product data: the storage-location
// correction.
type ProductStore interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	ListActiveByCategories(ctx context.Context, categories []string) ([]models.Product, error)
	ListActiveByLocations(ctx context.Context, tokens []string) ([]models.Product, error)
	ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	GetBalances(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.StockBalance, error)
	UpdateStorageLocation(ctx context.Context, productID uuid.UUID, location string) error
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctLocations(ctx context.Context) ([]string, error)
}

// AdjustmentStore persists generated stock adjustments.
type AdjustmentStore interface {
	CreateAdjustment(ctx context.Context, adjustment *models.Adjustment) error
	CreateAdjustmentItems(ctx context.Context, items []models.AdjustmentItem) error
	GetAdjustment(ctx context.Context, id uuid.UUID) (*models.Adjustment, error)
}

// UserStore is the read-only user directory behind the auditor picker.
type UserStore interface {
	ListByRole(ctx context.Context, role string) ([]models.User, error)
}
