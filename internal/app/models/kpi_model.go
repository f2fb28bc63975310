package models

import "github.com/shopspring/decimal"

// AuditKPI aggregates accuracy metrics across historical audits. Nil averages
// mean no audit contributed a value for that dimension; downstream consumers
// must not fold nil into zero.
type AuditKPI struct {
	TotalAudits            int              `json:"total_audits"`
	AvgQuantityAccuracy    *decimal.Decimal `json:"avg_quantity_accuracy,omitempty"`
	AvgLocationAccuracy    *decimal.Decimal `json:"avg_location_accuracy,omitempty"`
	AvgSafetyStockAccuracy *decimal.Decimal `json:"avg_safety_stock_accuracy,omitempty"`
	TotalItemsAudited      int64            `json:"total_items_audited"`
	AuditsByMonth          []AuditMonthKPI  `json:"audits_by_month"`
}

// AuditMonthKPI is one month bucket, keyed "YYYY-MM".
type AuditMonthKPI struct {
	Month    string          `json:"month"`
	Count    int             `json:"count"`
	Accuracy decimal.Decimal `json:"accuracy"`
}
