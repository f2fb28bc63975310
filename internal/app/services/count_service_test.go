package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stocklens/warehouse-core/internal/app/errors"
	"github.com/stocklens/warehouse-core/internal/app/models"
)

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func TestSaveCountComputesVariance(t *testing.T) {
	env := newTestEnv()
	p := env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
	audit := env.createFullAudit(t)
	itemID := env.itemForProduct(t, audit, p.ID).ID

	item := env.count(t, itemID, 47, true, "", nil)

	if item.CountedQty != 47 {
		t.Fatalf("expected counted qty 47, got %d", item.CountedQty)
	}
	if item.Variance != -3 {
		t.Fatalf("expected variance -3, got %d", item.Variance)
	}
	if !item.IsCounted {
		t.Fatal("item must be marked counted")
	}
	if item.CountedBy == nil || *item.CountedBy != env.actor.ID {
		t.Fatalf("expected counted_by %s, got %v", env.actor.ID, item.CountedBy)
	}
	if item.CountedAt == nil || !item.CountedAt.Equal(testNow) {
		t.Fatalf("expected counted_at %s, got %v", testNow, item.CountedAt)
	}
	if item.LocationMatch != models.MatchMatched {
		t.Fatalf("expected location matched, got %s", item.LocationMatch)
	}
	if item.SafetyStockMatch != models.MatchUnknown {
		t.Fatalf("safety stock unchecked, expected unknown, got %s", item.SafetyStockMatch)
	}
	// Frozen baseline untouched by the write.
	if item.SystemQty != 50 {
		t.Fatalf("system qty changed to %d", item.SystemQty)
	}
}

func TestSaveCountMissingQuantityRejected(t *testing.T) {
	env := newTestEnv()
	p := env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
	audit := env.createFullAudit(t)
	itemID := env.itemForProduct(t, audit, p.ID).ID

	_, err := env.countSvc.SaveCount(context.Background(), itemID.String(), &models.CountSubmitRequest{
		LocationMatch: boolPtr(true),
	}, env.actor)
	wantErrCode(t, err, errors.CodeInvalidInput)
}

func TestSaveCountLocationMismatchRequiresActualLocation(t *testing.T) {
	env := newTestEnv()
	p := env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
	audit := env.createFullAudit(t)
	itemID := env.itemForProduct(t, audit, p.ID).ID

	tests := []struct {
		name   string
		actual *string
	}{
		{"nil actual location", nil},
		{"blank actual location", strPtr("   ")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.countSvc.SaveCount(context.Background(), itemID.String(), &models.CountSubmitRequest{
				CountedQty:     int64Ptr(50),
				LocationMatch:  boolPtr(false),
				ActualLocation: tt.actual,
			}, env.actor)
			wantErrCode(t, err, errors.CodeInvalidInput)
		})
	}
}

func TestSaveCountLocationMismatchStoresTrimmedLocation(t *testing.T) {
	env := newTestEnv()
	p := env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
	audit := env.createFullAudit(t)
	itemID := env.itemForProduct(t, audit, p.ID).ID

	item, err := env.countSvc.SaveCount(context.Background(), itemID.String(), &models.CountSubmitRequest{
		CountedQty:     int64Ptr(50),
		LocationMatch:  boolPtr(false),
		ActualLocation: strPtr("  C3-07 "),
	}, env.actor)
	if err != nil {
		t.Fatalf("save count: %v", err)
	}
	if item.LocationMatch != models.MatchMismatched {
		t.Fatalf("expected mismatched, got %s", item.LocationMatch)
	}
	if item.ActualLocation == nil || *item.ActualLocation != "C3-07" {
		t.Fatalf("expected trimmed actual location C3-07, got %v", item.ActualLocation)
	}
}

func TestSaveCountLocationMatchDiscardsActualLocation(t *testing.T) {
	env := newTestEnv()
	p := env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
	audit := env.createFullAudit(t)
	itemID := env.itemForProduct(t, audit, p.ID).ID

	item, err := env.countSvc.SaveCount(context.Background(), itemID.String(), &models.CountSubmitRequest{
		CountedQty:     int64Ptr(50),
		LocationMatch:  boolPtr(true),
		ActualLocation: strPtr("C3-07"),
	}, env.actor)
	if err != nil {
		t.Fatalf("save count: %v", err)
	}
	if item.ActualLocation != nil {
		t.Fatalf("matched location must not keep an actual location, got %q", *item.ActualLocation)
	}
}

func TestSaveCountSafetyStockExactEquality(t *testing.T) {
	tests := []struct {
		name    string
		counted *int64
		want    models.MatchState
	}{
		{"unchecked", nil, models.MatchUnknown},
		{"exact match", int64Ptr(10), models.MatchMatched},
		{"off by one", int64Ptr(9), models.MatchMismatched},
		{"zero vs ten", int64Ptr(0), models.MatchMismatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			p := env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
			audit := env.createFullAudit(t)
			itemID := env.itemForProduct(t, audit, p.ID).ID

			item := env.count(t, itemID, 50, true, "", tt.counted)
			if item.SafetyStockMatch != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, item.SafetyStockMatch)
			}
		})
	}
}

func TestSaveCountResubmissionLastWriteWins(t *testing.T) {
	env := newTestEnv()
	p := env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
	audit := env.createFullAudit(t)
	itemID := env.itemForProduct(t, audit, p.ID).ID

	env.count(t, itemID, 47, false, "C3-07", int64Ptr(9))
	item := env.count(t, itemID, 50, true, "", int64Ptr(10))

	// Item state reflects only the second submission.
	if item.CountedQty != 50 || item.Variance != 0 {
		t.Fatalf("expected 50/0 after resubmission, got %d/%d", item.CountedQty, item.Variance)
	}
	if item.LocationMatch != models.MatchMatched || item.ActualLocation != nil {
		t.Fatalf("expected matched location with no actual, got %s/%v", item.LocationMatch, item.ActualLocation)
	}
	if item.SafetyStockMatch != models.MatchMatched {
		t.Fatalf("expected matched safety stock, got %s", item.SafetyStockMatch)
	}

	// The log keeps both submissions, oldest first.
	logs, err := env.countSvc.GetCountLogs(context.Background(), itemID.String())
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(logs))
	}
	if logs[0].CountedQty != 47 || logs[1].CountedQty != 50 {
		t.Fatalf("expected log quantities 47 then 50, got %d then %d", logs[0].CountedQty, logs[1].CountedQty)
	}
	if logs[0].ActualLocation == nil || *logs[0].ActualLocation != "C3-07" {
		t.Fatalf("first log must keep the reported location, got %v", logs[0].ActualLocation)
	}
	if logs[1].ActualLocation != nil {
		t.Fatalf("second log has no location mismatch, got %v", logs[1].ActualLocation)
	}
}

func TestSaveCountItemNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.countSvc.SaveCount(context.Background(), uuid.NewString(), &models.CountSubmitRequest{
		CountedQty:    int64Ptr(1),
		LocationMatch: boolPtr(true),
	}, env.actor)
	wantErrCode(t, err, errors.CodeNotFound)
}

func TestSaveCountRejectedOnTerminalAudit(t *testing.T) {
	env := newTestEnv()
	p := env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
	audit := env.createFullAudit(t)
	itemID := env.itemForProduct(t, audit, p.ID).ID

	env.count(t, itemID, 50, true, "", nil)
	if _, err := env.auditSvc.SubmitForReview(context.Background(), audit.ID.String(), env.actor); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := env.auditSvc.CloseAudit(context.Background(), audit.ID.String(), env.actor); err != nil {
		t.Fatalf("close: %v", err)
	}

	_, err := env.countSvc.SaveCount(context.Background(), itemID.String(), &models.CountSubmitRequest{
		CountedQty:    int64Ptr(49),
		LocationMatch: boolPtr(true),
	}, env.actor)
	wantErrCode(t, err, errors.CodeConflict)

	// The last accepted count survives untouched.
	item, getErr := env.audits.GetItem(context.Background(), itemID)
	if getErr != nil {
		t.Fatalf("get item: %v", getErr)
	}
	if item.CountedQty != 50 {
		t.Fatalf("closed audit's count changed to %d", item.CountedQty)
	}
}

func TestSaveCountNegativeQuantityRejected(t *testing.T) {
	env := newTestEnv()
	p := env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
	audit := env.createFullAudit(t)
	itemID := env.itemForProduct(t, audit, p.ID).ID

	_, err := env.countSvc.SaveCount(context.Background(), itemID.String(), &models.CountSubmitRequest{
		CountedQty:    int64Ptr(-1),
		LocationMatch: boolPtr(true),
	}, env.actor)
	wantErrCode(t, err, errors.CodeInvalidInput)
}
