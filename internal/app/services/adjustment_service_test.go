package services

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stocklens/warehouse-core/internal/app/errors"
	"github.com/stocklens/warehouse-core/internal/app/models"
)

var adjustNoPattern = regexp.MustCompile(`^ADJ-AUDIT-20250901-[1-9][0-9]{3}$`)

// reviewedAudit builds an audit with three findings: a surplus of 4 on one
// product, a clean count on another, and a location-only mismatch on a third.
func reviewedAudit(t *testing.T, env *testEnv) (*models.Audit, models.Product, models.Product, models.Product) {
	t.Helper()
	surplus := env.seedProduct("SKU-001", "Electronics", "A1-01", 10, 2)
	clean := env.seedProduct("SKU-002", "Electronics", "A1-02", 20, 5)
	misplaced := env.seedProduct("SKU-003", "Furniture", "B2-01", 7, 0)

	audit := env.createFullAudit(t)
	env.count(t, env.itemForProduct(t, audit, surplus.ID).ID, 14, true, "", nil)
	env.count(t, env.itemForProduct(t, audit, clean.ID).ID, 20, true, "", nil)
	env.count(t, env.itemForProduct(t, audit, misplaced.ID).ID, 7, false, "C3-07", nil)

	if _, err := env.auditSvc.SubmitForReview(context.Background(), audit.ID.String(), env.actor); err != nil {
		t.Fatalf("submit for review: %v", err)
	}
	return audit, surplus, clean, misplaced
}

func TestCreateFromAudit(t *testing.T) {
	env := newTestEnv()
	audit, surplus, _, misplaced := reviewedAudit(t, env)

	adjustment, err := env.adjSvc.CreateFromAudit(context.Background(), audit.ID.String(), env.actor)
	if err != nil {
		t.Fatalf("create adjustment: %v", err)
	}

	if adjustment.Status != models.AdjustmentStatusPending {
		t.Fatalf("expected pending, got %s", adjustment.Status)
	}
	if !adjustNoPattern.MatchString(adjustment.AdjustNo) {
		t.Fatalf("adjustment number %q does not match the expected format", adjustment.AdjustNo)
	}
	if adjustment.Note == nil || !strings.Contains(*adjustment.Note, audit.AuditNo) {
		t.Fatalf("note must reference the source audit number, got %v", adjustment.Note)
	}

	// One line for the quantity variance only; the clean count and the
	// location-only mismatch produce no lines.
	if len(adjustment.Items) != 1 {
		t.Fatalf("expected 1 adjustment line, got %d", len(adjustment.Items))
	}
	line := adjustment.Items[0]
	if line.ProductID != surplus.ID {
		t.Fatalf("expected line for %s, got %s", surplus.ID, line.ProductID)
	}
	if line.QtyDelta != 4 {
		t.Fatalf("expected qty delta +4, got %d", line.QtyDelta)
	}
	if line.NewSafetyStock != nil {
		t.Fatalf("safety stock was not mismatched, got %v", line.NewSafetyStock)
	}

	// The location correction bypasses the adjustment and hits the product
	// master directly.
	relocated, ok := env.products.Product(misplaced.ID)
	if !ok {
		t.Fatalf("product %s missing", misplaced.ID)
	}
	if relocated.StorageLocation == nil || *relocated.StorageLocation != "C3-07" {
		t.Fatalf("expected product relocated to C3-07, got %v", relocated.StorageLocation)
	}

	// The audit now references its adjustment.
	stored, err := env.auditSvc.GetAudit(context.Background(), audit.ID.String())
	if err != nil {
		t.Fatalf("get audit: %v", err)
	}
	if stored.AdjustmentID == nil || *stored.AdjustmentID != adjustment.ID {
		t.Fatalf("expected adjustment_id %s on audit, got %v", adjustment.ID, stored.AdjustmentID)
	}
}

func TestCreateFromAuditSafetyStockRidesOnVarianceLine(t *testing.T) {
	env := newTestEnv()
	p1 := env.seedProduct("SKU-001", "Electronics", "A1-01", 10, 2)
	p2 := env.seedProduct("SKU-002", "Electronics", "A1-02", 20, 5)
	audit := env.createFullAudit(t)

	// Variance plus safety stock mismatch: the corrected safety stock rides
	// on the variance line.
	env.count(t, env.itemForProduct(t, audit, p1.ID).ID, 8, true, "", int64Ptr(3))
	// Safety stock mismatch without quantity variance: no line at all.
	env.count(t, env.itemForProduct(t, audit, p2.ID).ID, 20, true, "", int64Ptr(7))

	if _, err := env.auditSvc.SubmitForReview(context.Background(), audit.ID.String(), env.actor); err != nil {
		t.Fatalf("submit: %v", err)
	}

	adjustment, err := env.adjSvc.CreateFromAudit(context.Background(), audit.ID.String(), env.actor)
	if err != nil {
		t.Fatalf("create adjustment: %v", err)
	}

	if len(adjustment.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(adjustment.Items))
	}
	line := adjustment.Items[0]
	if line.ProductID != p1.ID || line.QtyDelta != -2 {
		t.Fatalf("expected line for %s with delta -2, got %s/%d", p1.ID, line.ProductID, line.QtyDelta)
	}
	if line.NewSafetyStock == nil || *line.NewSafetyStock != 3 {
		t.Fatalf("expected new safety stock 3, got %v", line.NewSafetyStock)
	}
}

func TestCreateFromAuditNothingToAdjust(t *testing.T) {
	env := newTestEnv()
	p := env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
	audit := env.createFullAudit(t)
	env.count(t, env.itemForProduct(t, audit, p.ID).ID, 50, true, "", nil)
	if _, err := env.auditSvc.SubmitForReview(context.Background(), audit.ID.String(), env.actor); err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err := env.adjSvc.CreateFromAudit(context.Background(), audit.ID.String(), env.actor)
	wantErrCode(t, err, errors.CodeNothingToAdjust)
}

func TestCreateFromAuditRequiresReviewStatus(t *testing.T) {
	env := newTestEnv()
	p := env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
	audit := env.createFullAudit(t)
	env.count(t, env.itemForProduct(t, audit, p.ID).ID, 47, true, "", nil)

	_, err := env.adjSvc.CreateFromAudit(context.Background(), audit.ID.String(), env.actor)
	wantErrCode(t, err, errors.CodeConflict)
}

func TestCreateFromAuditTwiceRejected(t *testing.T) {
	env := newTestEnv()
	audit, _, _, _ := reviewedAudit(t, env)

	if _, err := env.adjSvc.CreateFromAudit(context.Background(), audit.ID.String(), env.actor); err != nil {
		t.Fatalf("first adjustment: %v", err)
	}
	_, err := env.adjSvc.CreateFromAudit(context.Background(), audit.ID.String(), env.actor)
	wantErrCode(t, err, errors.CodeConflict)
}

func TestGetAdjustmentReturnsLines(t *testing.T) {
	env := newTestEnv()
	audit, _, _, _ := reviewedAudit(t, env)

	created, err := env.adjSvc.CreateFromAudit(context.Background(), audit.ID.String(), env.actor)
	if err != nil {
		t.Fatalf("create adjustment: %v", err)
	}

	fetched, err := env.adjSvc.GetAdjustment(context.Background(), created.ID.String())
	if err != nil {
		t.Fatalf("get adjustment: %v", err)
	}
	if fetched.AdjustNo != created.AdjustNo {
		t.Fatalf("expected %s, got %s", created.AdjustNo, fetched.AdjustNo)
	}
	if len(fetched.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(fetched.Items))
	}
}

func TestGetAdjustmentNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.adjSvc.GetAdjustment(context.Background(), uuid.NewString())
	wantErrCode(t, err, errors.CodeNotFound)
}
