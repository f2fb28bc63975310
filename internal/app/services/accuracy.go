package services

import (
	"github.com/shopspring/decimal"
	"github.com/stocklens/warehouse-core/internal/app/models"
)

// AccuracySummary is the result of one accuracy aggregation over an audit's
// item set. QuantityAccuracy is always present (zero when nothing was
// counted, a historical convention), while the location and safety-stock
// dimensions stay nil when never checked. KPI averaging relies on that
// asymmetry: nil means "exclude from average", zero is a real zero.
type AccuracySummary struct {
	CountedItems          int
	TotalVariance         int64
	QuantityAccuracy      decimal.Decimal
	LocationAccuracy      *decimal.Decimal
	SafetyStockAccuracy   *decimal.Decimal
	LocationMismatches    int
	SafetyStockMismatches int
}

// ComputeAccuracy derives the three independent accuracy percentages over an
// audit's items. It is a pure function: the review screen runs it transiently
// over whatever is counted so far, and the in_progress -> review transition
// runs it once more as the authoritative, persisted computation.
func ComputeAccuracy(items []models.AuditItem) AccuracySummary {
	var summary AccuracySummary

	var qtyMatched int
	var locationChecked, locationMatched int
	var safetyChecked, safetyMatched int

	for _, item := range items {
		if !item.IsCounted {
			continue
		}
		summary.CountedItems++

		if item.Variance == 0 {
			qtyMatched++
		}
		summary.TotalVariance += abs64(item.Variance)

		if item.LocationMatch.Checked() {
			locationChecked++
			if item.LocationMatch == models.MatchMatched {
				locationMatched++
			}
		}
		if item.SafetyStockMatch.Checked() {
			safetyChecked++
			if item.SafetyStockMatch == models.MatchMatched {
				safetyMatched++
			}
		}
	}

	if summary.CountedItems > 0 {
		summary.QuantityAccuracy = percentage(qtyMatched, summary.CountedItems)
	}

	summary.LocationMismatches = locationChecked - locationMatched
	if locationChecked > 0 {
		p := percentage(locationMatched, locationChecked)
		summary.LocationAccuracy = &p
	}

	summary.SafetyStockMismatches = safetyChecked - safetyMatched
	if safetyChecked > 0 {
		p := percentage(safetyMatched, safetyChecked)
		summary.SafetyStockAccuracy = &p
	}

	return summary
}

// percentage computes matched/total*100 rounded to two decimals, so repeated
// aggregation over the same item set always yields the same persisted value.
func percentage(matched, total int) decimal.Decimal {
	return decimal.NewFromInt(int64(matched) * 100).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
