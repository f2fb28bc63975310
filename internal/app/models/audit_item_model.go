package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchState is the tri-state outcome of a physical check. "unknown" means
// the dimension was never checked, which is structurally distinct from a
// checked-and-matched result.
type MatchState string

const (
	MatchUnknown    MatchState = "unknown"
	MatchMatched    MatchState = "matched"
	MatchMismatched MatchState = "mismatched"
)

// Checked reports whether the dimension was actually verified by an auditor.
func (m MatchState) Checked() bool {
	return m == MatchMatched || m == MatchMismatched
}

// AuditItem carries one product's frozen baseline and its blind-count result.
// The system_* fields and ProductCategory are written once at audit creation
// and never mutated; later edits to the product master must not change what
// was being audited.
type AuditItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuditID   uuid.UUID `json:"audit_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`

	// Frozen baseline.
	SystemQty         int64   `json:"system_qty" gorm:"not null"`
	SystemSafetyStock int64   `json:"system_safety_stock" gorm:"not null;default:0"`
	SystemLocation    *string `json:"system_location,omitempty" gorm:"type:varchar(100)"`
	ProductCategory   *string `json:"product_category,omitempty" gorm:"type:varchar(100)"`

	// Count result, last write wins per item.
	CountedQty         int64      `json:"counted_qty" gorm:"not null;default:0"`
	Variance           int64      `json:"variance" gorm:"not null;default:0"`
	IsCounted          bool       `json:"is_counted" gorm:"not null;default:false"`
	CountedBy          *uuid.UUID `json:"counted_by,omitempty" gorm:"type:uuid"`
	CountedAt          *time.Time `json:"counted_at,omitempty"`
	LocationMatch      MatchState `json:"location_match" gorm:"type:varchar(12);not null;default:'unknown'"`
	ActualLocation     *string    `json:"actual_location,omitempty" gorm:"type:varchar(100)"`
	CountedSafetyStock *int64     `json:"counted_safety_stock,omitempty"`
	SafetyStockMatch   MatchState `json:"safety_stock_match" gorm:"type:varchar(12);not null;default:'unknown'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (AuditItem) TableName() string {
	return "inv_audit_items"
}

type CountSubmitRequest struct {
	CountedQty         *int64  `json:"counted_qty" validate:"required,min=0"`
	LocationMatch      *bool   `json:"location_match" validate:"required"`
	ActualLocation     *string `json:"actual_location,omitempty" validate:"omitempty,max=100"`
	CountedSafetyStock *int64  `json:"counted_safety_stock,omitempty" validate:"omitempty,min=0"`
}
