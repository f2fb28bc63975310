package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stocklens/warehouse-core/internal/app/errors"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"github.com/stocklens/warehouse-core/internal/app/repositories"
)

const catalogCacheTTL = time.Minute

type ScopeService struct {
	products repositories.ProductStore
	users    repositories.UserStore
	redis    *redis.Client
}

func NewScopeService(products repositories.ProductStore, users repositories.UserStore, redisClient *redis.Client) *ScopeService {
	return &ScopeService{
		products: products,
		users:    users,
		redis:    redisClient,
	}
}

// ResolveScope turns an audit type plus optional filter into the concrete
// product set to audit. Resolving to zero products is a hard failure: an
// audit cannot be created with nothing to count.
func (s *ScopeService) ResolveScope(ctx context.Context, auditType models.AuditType, filter *models.ScopeFilter) ([]models.Product, error) {
	var products []models.Product
	var err error

	switch auditType {
	case models.AuditTypeFull, models.AuditTypeFreeScan:
		products, err = s.products.ListActive(ctx)
	case models.AuditTypeCategory:
		if filter == nil || len(filter.Categories) == 0 {
			return nil, errors.NewEmptyScopeError("Category audit requires at least one category")
		}
		products, err = s.products.ListActiveByCategories(ctx, filter.Categories)
	case models.AuditTypeLocation:
		if filter == nil || len(filter.Locations) == 0 {
			return nil, errors.NewEmptyScopeError("Location audit requires at least one location")
		}
		products, err = s.products.ListActiveByLocations(ctx, filter.Locations)
	case models.AuditTypeCustom:
		if filter == nil || len(filter.ProductIDs) == 0 {
			return nil, errors.NewEmptyScopeError("Custom audit requires at least one product")
		}
		// Unknown ids are silently dropped by the store lookup.
		ids := make([]uuid.UUID, 0, len(filter.ProductIDs))
		for _, raw := range filter.ProductIDs {
			if id, parseErr := uuid.Parse(raw); parseErr == nil {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return nil, errors.NewEmptyScopeError("Custom audit requires at least one product")
		}
		products, err = s.products.ListActiveByIDs(ctx, ids)
	default:
		return nil, errors.NewBadRequestError("Unknown audit type")
	}

	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to resolve audit scope")
	}
	if len(products) == 0 {
		return nil, errors.NewEmptyScopeError("No products matched the audit scope")
	}
	return products, nil
}

func (s *ScopeService) ListDistinctCategories(ctx context.Context) ([]string, error) {
	if cached, ok := s.cachedList(ctx, "warehouse:catalog:categories"); ok {
		return cached, nil
	}

	categories, err := s.products.DistinctCategories(ctx)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list categories")
	}

	s.cacheList(ctx, "warehouse:catalog:categories", categories)
	return categories, nil
}

func (s *ScopeService) ListDistinctLocations(ctx context.Context) ([]string, error) {
	if cached, ok := s.cachedList(ctx, "warehouse:catalog:locations"); ok {
		return cached, nil
	}

	locations, err := s.products.DistinctLocations(ctx)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list locations")
	}

	s.cacheList(ctx, "warehouse:catalog:locations", locations)
	return locations, nil
}

func (s *ScopeService) ListAuditors(ctx context.Context) ([]models.AuditorRef, error) {
	users, err := s.users.ListByRole(ctx, models.RoleAuditor)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list auditors")
	}

	auditors := make([]models.AuditorRef, 0, len(users))
	for _, user := range users {
		auditors = append(auditors, models.AuditorRef{ID: user.ID, Username: user.Username})
	}
	return auditors, nil
}

// Catalog caching is best-effort: any redis failure falls through to the
// store, and a nil client disables it entirely.
func (s *ScopeService) cachedList(ctx context.Context, key string) ([]string, bool) {
	if s.redis == nil {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false
	}
	return values, true
}

func (s *ScopeService) cacheList(ctx context.Context, key string, values []string) {
	if s.redis == nil {
		return
	}
	if raw, err := json.Marshal(values); err == nil {
		s.redis.Set(ctx, key, raw, catalogCacheTTL)
	}
}
