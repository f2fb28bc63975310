package models

import (
	"time"

	"github.com/google/uuid"
)

type AdjustmentStatus string

const (
	AdjustmentStatusPending  AdjustmentStatus = "pending"
	AdjustmentStatusApproved AdjustmentStatus = "approved"
	AdjustmentStatusRejected AdjustmentStatus = "rejected"
)

// Adjustment is the stock-correction document generated from one audit's
// variance set. Its approval lifecycle (pending -> approved/rejected) is
// owned elsewhere; the engine's responsibility ends at generating correct
// line items.
type Adjustment struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdjustNo  string           `json:"adjust_no" gorm:"type:varchar(40);not null;uniqueIndex"`
	Status    AdjustmentStatus `json:"status" gorm:"type:varchar(20);not null"`
	Note      *string          `json:"note,omitempty" gorm:"type:text"`
	CreatedBy uuid.UUID        `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`

	Items []AdjustmentItem `json:"items,omitempty" gorm:"foreignKey:AdjustmentID"`
}

func (Adjustment) TableName() string {
	return "inv_adjustments"
}

// AdjustmentItem is one quantity correction line. NewSafetyStock rides along
// only when the audit found a safety-stock mismatch on the same product.
type AdjustmentItem struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdjustmentID   uuid.UUID `json:"adjustment_id" gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	QtyDelta       int64     `json:"qty_delta" gorm:"not null"`
	NewSafetyStock *int64    `json:"new_safety_stock,omitempty"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (AdjustmentItem) TableName() string {
	return "inv_adjustment_items"
}
