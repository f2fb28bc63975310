package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/stocklens/warehouse-core/internal/app/errors"
	"github.com/stocklens/warehouse-core/internal/app/models"
)

func TestResolveScopeRequiresFilter(t *testing.T) {
	env := newTestEnv()
	env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)

	tests := []struct {
		name      string
		auditType models.AuditType
		filter    *models.ScopeFilter
	}{
		{"category with nil filter", models.AuditTypeCategory, nil},
		{"category with empty list", models.AuditTypeCategory, &models.ScopeFilter{Categories: []string{}}},
		{"location with nil filter", models.AuditTypeLocation, nil},
		{"custom with nil filter", models.AuditTypeCustom, nil},
		{"custom with only unparseable ids", models.AuditTypeCustom, &models.ScopeFilter{ProductIDs: []string{"not-a-uuid"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.scopeSvc.ResolveScope(context.Background(), tt.auditType, tt.filter)
			wantErrCode(t, err, errors.CodeEmptyScope)
		})
	}
}

func TestResolveScopeFreeScanCoversEverything(t *testing.T) {
	env := newTestEnv()
	env.seedProduct("SKU-001", "Electronics", "A1-01", 50, 10)
	env.seedProduct("SKU-002", "Furniture", "B2-01", 7, 0)

	products, err := env.scopeSvc.ResolveScope(context.Background(), models.AuditTypeFreeScan, nil)
	if err != nil {
		t.Fatalf("resolve scope: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("free_scan must cover all active products, got %d", len(products))
	}
}

func TestResolveScopeUnknownType(t *testing.T) {
	env := newTestEnv()

	_, err := env.scopeSvc.ResolveScope(context.Background(), models.AuditType("weekly"), nil)
	wantErrCode(t, err, errors.CodeInvalidInput)
}

func TestListDistinctCatalogs(t *testing.T) {
	env := newTestEnv()
	env.seedProduct("SKU-001", "Electronics", "B2-01", 1, 0)
	env.seedProduct("SKU-002", "Electronics", "A1-01", 2, 0)
	env.seedProduct("SKU-003", "Furniture", "A1-01", 3, 0)
	env.seedProduct("SKU-004", "", "", 4, 0)

	categories, err := env.scopeSvc.ListDistinctCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if want := []string{"Electronics", "Furniture"}; !reflect.DeepEqual(categories, want) {
		t.Fatalf("expected %v, got %v", want, categories)
	}

	locations, err := env.scopeSvc.ListDistinctLocations(context.Background())
	if err != nil {
		t.Fatalf("list locations: %v", err)
	}
	if want := []string{"A1-01", "B2-01"}; !reflect.DeepEqual(locations, want) {
		t.Fatalf("expected %v, got %v", want, locations)
	}
}

func TestListAuditorsFiltersByRole(t *testing.T) {
	env := newTestEnv()
	somsri := env.users.SeedUser(models.User{Username: "somsri", Role: models.RoleAuditor})
	env.users.SeedUser(models.User{Username: "boss", Role: "manager"})
	anan := env.users.SeedUser(models.User{Username: "anan", Role: models.RoleAuditor})

	auditors, err := env.scopeSvc.ListAuditors(context.Background())
	if err != nil {
		t.Fatalf("list auditors: %v", err)
	}
	if len(auditors) != 2 {
		t.Fatalf("expected 2 auditors, got %d", len(auditors))
	}
	// Sorted by username.
	if auditors[0].ID != anan.ID || auditors[1].ID != somsri.ID {
		t.Fatalf("expected anan then somsri, got %s then %s", auditors[0].Username, auditors[1].Username)
	}
}
