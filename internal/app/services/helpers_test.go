package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stocklens/warehouse-core/internal/app/errors"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"github.com/stocklens/warehouse-core/internal/app/repositories"
	"github.com/stocklens/warehouse-core/internal/infrastructures"
)

var testNow = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	audits      *repositories.MemoryAuditRepo
	products    *repositories.MemoryProductRepo
	adjustments *repositories.MemoryAdjustmentRepo
	users       *repositories.MemoryUserRepo

	scopeSvc *ScopeService
	auditSvc *AuditService
	countSvc *CountService
	adjSvc   *AdjustmentService
	kpiSvc   *KPIService

	actor models.Actor
}

func newTestEnv() *testEnv {
	audits := repositories.NewMemoryAuditRepo()
	products := repositories.NewMemoryProductRepo()
	adjustments := repositories.NewMemoryAdjustmentRepo()
	users := repositories.NewMemoryUserRepo()
	validator := infrastructures.NewValidator()

	scopeSvc := NewScopeService(products, users, nil)
	auditSvc := NewAuditService(audits, products, scopeSvc, validator)
	countSvc := NewCountService(audits, validator)
	adjSvc := NewAdjustmentService(audits, adjustments, products)
	kpiSvc := NewKPIService(audits, nil)

	auditSvc.now = func() time.Time { return testNow }
	countSvc.now = func() time.Time { return testNow }
	adjSvc.now = func() time.Time { return testNow }

	return &testEnv{
		audits:      audits,
		products:    products,
		adjustments: adjustments,
		users:       users,
		scopeSvc:    scopeSvc,
		auditSvc:    auditSvc,
		countSvc:    countSvc,
		adjSvc:      adjSvc,
		kpiSvc:      kpiSvc,
		actor:       models.Actor{ID: uuid.New(), Username: "somchai", Role: models.RoleAuditor},
	}
}

func (e *testEnv) seedProduct(code, category, location string, onHand, safetyStock int64) models.Product {
	product := models.Product{
		ProductCode: code,
		ProductName: "Product " + code,
		IsActive:    true,
	}
	if category != "" {
		product.ProductCategory = &category
	}
	if location != "" {
		product.StorageLocation = &location
	}
	return e.products.SeedProduct(product, &models.StockBalance{
		OnHand:      onHand,
		SafetyStock: safetyStock,
	})
}

// createFullAudit seeds nothing; it creates a full-scope audit over whatever
// products are already seeded.
func (e *testEnv) createFullAudit(t *testing.T) *models.Audit {
	t.Helper()
	audit, err := e.auditSvc.CreateAudit(context.Background(), &models.AuditCreateRequest{
		AuditType: models.AuditTypeFull,
	}, e.actor)
	if err != nil {
		t.Fatalf("create audit: %v", err)
	}
	return audit
}

func (e *testEnv) itemForProduct(t *testing.T, audit *models.Audit, productID uuid.UUID) models.AuditItem {
	t.Helper()
	items, err := e.auditSvc.GetAuditItems(context.Background(), audit.ID.String())
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	for _, item := range items {
		if item.ProductID == productID {
			return item
		}
	}
	t.Fatalf("no item for product %s", productID)
	return models.AuditItem{}
}

func (e *testEnv) count(t *testing.T, itemID uuid.UUID, qty int64, locationMatch bool, actualLocation string, safetyStock *int64) *models.AuditItem {
	t.Helper()
	req := &models.CountSubmitRequest{
		CountedQty:         &qty,
		LocationMatch:      &locationMatch,
		CountedSafetyStock: safetyStock,
	}
	if actualLocation != "" {
		req.ActualLocation = &actualLocation
	}
	item, err := e.countSvc.SaveCount(context.Background(), itemID.String(), req, e.actor)
	if err != nil {
		t.Fatalf("save count: %v", err)
	}
	return item
}

func wantErrCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	if got := errors.CodeOf(err); got != code {
		t.Fatalf("expected error code %s, got %s (%v)", code, got, err)
	}
}

func int64Ptr(v int64) *int64 { return &v }
