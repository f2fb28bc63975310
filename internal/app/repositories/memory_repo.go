package repositories

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stocklens/warehouse-core/internal/app/models"
)

// In-memory store implementations. Useful for tests; not intended for
// production use.

type MemoryAuditRepo struct {
	mu     sync.Mutex
	audits map[uuid.UUID]models.Audit
	items  map[uuid.UUID]models.AuditItem
	// itemOrder preserves insertion order, which stands in for the
	// created_at ordering of the SQL store.
	itemOrder []uuid.UUID
	logs      []models.CountLog

	// FailCreateItems forces the item bulk-insert to fail, to exercise the
	// compensating cleanup of the two-phase create. FailDeleteAudit makes
	// that cleanup itself fail, leaving an orphan draft behind.
	FailCreateItems bool
	FailDeleteAudit bool
}

func NewMemoryAuditRepo() *MemoryAuditRepo {
	return &MemoryAuditRepo{
		audits: make(map[uuid.UUID]models.Audit),
		items:  make(map[uuid.UUID]models.AuditItem),
	}
}

func (r *MemoryAuditRepo) CreateAudit(ctx context.Context, audit *models.Audit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}
	if audit.CreatedAt.IsZero() {
		audit.CreatedAt = time.Now()
	}
	r.audits[audit.ID] = *audit
	return nil
}

func (r *MemoryAuditRepo) UpdateAudit(ctx context.Context, audit *models.Audit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.audits[audit.ID]; !ok {
		return ErrNotFound
	}
	r.audits[audit.ID] = *audit
	return nil
}

func (r *MemoryAuditRepo) DeleteAudit(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailDeleteAudit {
		return errors.New("audit delete failed")
	}
	delete(r.audits, id)
	return nil
}

func (r *MemoryAuditRepo) GetAudit(ctx context.Context, id uuid.UUID) (*models.Audit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	audit, ok := r.audits[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &audit, nil
}

func (r *MemoryAuditRepo) ListAudits(ctx context.Context, status *models.AuditStatus, page, limit int) ([]models.Audit, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var audits []models.Audit
	for _, audit := range r.audits {
		// Draft headers belong to an in-flight two-phase create and never
		// reach list views.
		if audit.Status == models.AuditStatusDraft {
			continue
		}
		if status != nil && audit.Status != *status {
			continue
		}
		audits = append(audits, audit)
	}
	sort.Slice(audits, func(i, j int) bool {
		return audits[i].CreatedAt.After(audits[j].CreatedAt)
	})

	total := int64(len(audits))
	offset := (page - 1) * limit
	if offset >= len(audits) {
		return nil, total, nil
	}
	audits = audits[offset:]
	if limit > 0 && len(audits) > limit {
		audits = audits[:limit]
	}
	return audits, total, nil
}

func (r *MemoryAuditRepo) ListAuditsByStatuses(ctx context.Context, statuses []models.AuditStatus) ([]models.Audit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[models.AuditStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	var audits []models.Audit
	for _, audit := range r.audits {
		if wanted[audit.Status] {
			audits = append(audits, audit)
		}
	}
	sort.Slice(audits, func(i, j int) bool {
		return audits[i].CreatedAt.After(audits[j].CreatedAt)
	})
	return audits, nil
}

func (r *MemoryAuditRepo) ListAssignedAudits(ctx context.Context, auditorID uuid.UUID) ([]models.Audit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var audits []models.Audit
	for _, audit := range r.audits {
		if audit.Status == models.AuditStatusInProgress && audit.AssignedToActor(auditorID) {
			audits = append(audits, audit)
		}
	}
	sort.Slice(audits, func(i, j int) bool {
		return audits[i].CreatedAt.After(audits[j].CreatedAt)
	})
	return audits, nil
}

func (r *MemoryAuditRepo) CreateItems(ctx context.Context, items []models.AuditItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreateItems {
		return errors.New("item insert failed")
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = time.Now()
		}
		r.items[items[i].ID] = items[i]
		r.itemOrder = append(r.itemOrder, items[i].ID)
	}
	return nil
}

func (r *MemoryAuditRepo) GetItem(ctx context.Context, id uuid.UUID) (*models.AuditItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *MemoryAuditRepo) ListItems(ctx context.Context, auditID uuid.UUID) ([]models.AuditItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []models.AuditItem
	for _, id := range r.itemOrder {
		if item, ok := r.items[id]; ok && item.AuditID == auditID {
			items = append(items, item)
		}
	}
	return items, nil
}

// UpdateItemCount overwrites only the count fields, mirroring the column set
// of the SQL store. Frozen baseline fields stay untouched.
func (r *MemoryAuditRepo) UpdateItemCount(ctx context.Context, item *models.AuditItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return ErrNotFound
	}
	stored.CountedQty = item.CountedQty
	stored.Variance = item.Variance
	stored.IsCounted = item.IsCounted
	stored.CountedBy = item.CountedBy
	stored.CountedAt = item.CountedAt
	stored.LocationMatch = item.LocationMatch
	stored.ActualLocation = item.ActualLocation
	stored.CountedSafetyStock = item.CountedSafetyStock
	stored.SafetyStockMatch = item.SafetyStockMatch
	r.items[item.ID] = stored
	return nil
}

func (r *MemoryAuditRepo) AppendCountLog(ctx context.Context, log *models.CountLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *MemoryAuditRepo) ListCountLogs(ctx context.Context, auditItemID uuid.UUID) ([]models.CountLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var logs []models.CountLog
	for _, log := range r.logs {
		if log.AuditItemID == auditItemID {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

type MemoryProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]models.Product
	order    []uuid.UUID
	balances map[uuid.UUID]models.StockBalance
}

func NewMemoryProductRepo() *MemoryProductRepo {
	return &MemoryProductRepo{
		products: make(map[uuid.UUID]models.Product),
		balances: make(map[uuid.UUID]models.StockBalance),
	}
}

// SeedProduct inserts a product and its stock balance for tests.
func (r *MemoryProductRepo) SeedProduct(product models.Product, balance *models.StockBalance) models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	r.order = append(r.order, product.ID)
	if balance != nil {
		balance.ProductID = product.ID
		r.balances[product.ID] = *balance
	}
	return product
}

func (r *MemoryProductRepo) Product(id uuid.UUID) (models.Product, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	return product, ok
}

func (r *MemoryProductRepo) listActive(match func(models.Product) bool) []models.Product {
	var products []models.Product
	for _, id := range r.order {
		product := r.products[id]
		if product.IsActive && match(product) {
			products = append(products, product)
		}
	}
	return products
}

func (r *MemoryProductRepo) ListActive(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listActive(func(models.Product) bool { return true }), nil
}

func (r *MemoryProductRepo) ListActiveByCategories(ctx context.Context, categories []string) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}
	return r.listActive(func(p models.Product) bool {
		return p.ProductCategory != nil && wanted[*p.ProductCategory]
	}), nil
}

func (r *MemoryProductRepo) ListActiveByLocations(ctx context.Context, tokens []string) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listActive(func(p models.Product) bool {
		if p.StorageLocation == nil {
			return false
		}
		location := strings.ToLower(*p.StorageLocation)
		for _, token := range tokens {
			if strings.Contains(location, strings.ToLower(token)) {
				return true
			}
		}
		return false
	}), nil
}

func (r *MemoryProductRepo) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.listActive(func(p models.Product) bool {
		return wanted[p.ID]
	}), nil
}

func (r *MemoryProductRepo) GetBalances(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.StockBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[uuid.UUID]models.StockBalance)
	for _, id := range ids {
		if balance, ok := r.balances[id]; ok {
			result[id] = balance
		}
	}
	return result, nil
}

func (r *MemoryProductRepo) UpdateStorageLocation(ctx context.Context, productID uuid.UUID, location string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return ErrNotFound
	}
	product.StorageLocation = &location
	r.products[productID] = product
	return nil
}

func (r *MemoryProductRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.distinct(func(p models.Product) *string { return p.ProductCategory }), nil
}

func (r *MemoryProductRepo) DistinctLocations(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.distinct(func(p models.Product) *string { return p.StorageLocation }), nil
}

func (r *MemoryProductRepo) distinct(field func(models.Product) *string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, product := range r.products {
		if !product.IsActive {
			continue
		}
		if v := field(product); v != nil && *v != "" && !seen[*v] {
			seen[*v] = true
			values = append(values, *v)
		}
	}
	sort.Strings(values)
	return values
}

type MemoryAdjustmentRepo struct {
	mu          sync.Mutex
	adjustments map[uuid.UUID]models.Adjustment
	items       []models.AdjustmentItem
}

func NewMemoryAdjustmentRepo() *MemoryAdjustmentRepo {
	return &MemoryAdjustmentRepo{
		adjustments: make(map[uuid.UUID]models.Adjustment),
	}
}

func (r *MemoryAdjustmentRepo) CreateAdjustment(ctx context.Context, adjustment *models.Adjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if adjustment.ID == uuid.Nil {
		adjustment.ID = uuid.New()
	}
	if adjustment.CreatedAt.IsZero() {
		adjustment.CreatedAt = time.Now()
	}
	stored := *adjustment
	stored.Items = nil
	r.adjustments[adjustment.ID] = stored
	return nil
}

func (r *MemoryAdjustmentRepo) CreateAdjustmentItems(ctx context.Context, items []models.AdjustmentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		r.items = append(r.items, items[i])
	}
	return nil
}

func (r *MemoryAdjustmentRepo) GetAdjustment(ctx context.Context, id uuid.UUID) (*models.Adjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	adjustment, ok := r.adjustments[id]
	if !ok {
		return nil, ErrNotFound
	}
	for _, item := range r.items {
		if item.AdjustmentID == id {
			adjustment.Items = append(adjustment.Items, item)
		}
	}
	return &adjustment, nil
}

type MemoryUserRepo struct {
	mu    sync.Mutex
	users []models.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{}
}

func (r *MemoryUserRepo) SeedUser(user models.User) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users = append(r.users, user)
	return user
}

func (r *MemoryUserRepo) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []models.User
	for _, user := range r.users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}
