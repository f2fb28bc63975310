package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stocklens/warehouse-core/internal/app/errors"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"github.com/stocklens/warehouse-core/internal/app/repositories"
)

const (
	kpiCacheKey = "warehouse:kpi:audits"
	kpiCacheTTL = 2 * time.Minute
)

// KPIService is a pure read-side consumer of audit metrics: it averages the
// accuracy percentages persisted at review time and never recomputes them
// from items.
type KPIService struct {
	audits repositories.AuditStore
	redis  *redis.Client
}

func NewKPIService(audits repositories.AuditStore, redisClient *redis.Client) *KPIService {
	return &KPIService{
		audits: audits,
		redis:  redisClient,
	}
}

// ComputeKPI aggregates accuracy across audits that reached review or later.
// Audits with a nil metric are excluded from that metric's average; a zero is
// a real zero and is included.
func (s *KPIService) ComputeKPI(ctx context.Context) (*models.AuditKPI, error) {
	if cached := s.cachedKPI(ctx); cached != nil {
		return cached, nil
	}

	audits, err := s.audits.ListAuditsByStatuses(ctx, []models.AuditStatus{
		models.AuditStatusReview,
		models.AuditStatusCompleted,
		models.AuditStatusClosed,
	})
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list audits for KPI")
	}

	kpi := &models.AuditKPI{
		TotalAudits:   len(audits),
		AuditsByMonth: []models.AuditMonthKPI{},
	}

	var qtySum, locSum, safetySum decimal.Decimal
	var qtyCount, locCount, safetyCount int

	type monthBucket struct {
		count       int
		accuracySum decimal.Decimal
	}
	months := make(map[string]*monthBucket)

	for _, audit := range audits {
		if audit.AccuracyPercent != nil {
			qtySum = qtySum.Add(*audit.AccuracyPercent)
			qtyCount++
		}
		if audit.LocationAccuracyPercent != nil {
			locSum = locSum.Add(*audit.LocationAccuracyPercent)
			locCount++
		}
		if audit.SafetyStockAccuracyPercent != nil {
			safetySum = safetySum.Add(*audit.SafetyStockAccuracyPercent)
			safetyCount++
		}
		if audit.TotalItems != nil {
			kpi.TotalItemsAudited += int64(*audit.TotalItems)
		}

		month := audit.CreatedAt.Format("2006-01")
		bucket := months[month]
		if bucket == nil {
			bucket = &monthBucket{}
			months[month] = bucket
		}
		bucket.count++
		if audit.AccuracyPercent != nil {
			bucket.accuracySum = bucket.accuracySum.Add(*audit.AccuracyPercent)
		}
	}

	if qtyCount > 0 {
		avg := qtySum.Div(decimal.NewFromInt(int64(qtyCount))).Round(2)
		kpi.AvgQuantityAccuracy = &avg
	}
	if locCount > 0 {
		avg := locSum.Div(decimal.NewFromInt(int64(locCount))).Round(2)
		kpi.AvgLocationAccuracy = &avg
	}
	if safetyCount > 0 {
		avg := safetySum.Div(decimal.NewFromInt(int64(safetyCount))).Round(2)
		kpi.AvgSafetyStockAccuracy = &avg
	}

	for month, bucket := range months {
		kpi.AuditsByMonth = append(kpi.AuditsByMonth, models.AuditMonthKPI{
			Month:    month,
			Count:    bucket.count,
			Accuracy: bucket.accuracySum.Div(decimal.NewFromInt(int64(bucket.count))).Round(2),
		})
	}
	sort.Slice(kpi.AuditsByMonth, func(i, j int) bool {
		return kpi.AuditsByMonth[i].Month < kpi.AuditsByMonth[j].Month
	})

	s.cacheKPI(ctx, kpi)
	return kpi, nil
}

func (s *KPIService) cachedKPI(ctx context.Context) *models.AuditKPI {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, kpiCacheKey).Result()
	if err != nil {
		return nil
	}
	var kpi models.AuditKPI
	if err := json.Unmarshal([]byte(raw), &kpi); err != nil {
		return nil
	}
	return &kpi
}

func (s *KPIService) cacheKPI(ctx context.Context, kpi *models.AuditKPI) {
	if s.redis == nil {
		return
	}
	if raw, err := json.Marshal(kpi); err == nil {
		s.redis.Set(ctx, kpiCacheKey, raw, kpiCacheTTL)
	}
}
