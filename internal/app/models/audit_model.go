package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AuditStatus string

const (
	AuditStatusDraft      AuditStatus = "draft"
	AuditStatusInProgress AuditStatus = "in_progress"
	AuditStatusReview     AuditStatus = "review"
	AuditStatusCompleted  AuditStatus = "completed"
	AuditStatusClosed     AuditStatus = "closed"
)

type AuditType string

const (
	AuditTypeFull     AuditType = "full"
	AuditTypeCategory AuditType = "category"
	AuditTypeLocation AuditType = "location"
	AuditTypeCustom   AuditType = "custom"
	AuditTypeFreeScan AuditType = "free_scan"
)

// Valid lifecycle transitions: from -> []to. Draft only exists inside the
// two-phase create; completed and closed are terminal.
var validAuditTransitions = map[AuditStatus][]AuditStatus{
	AuditStatusDraft:      {AuditStatusInProgress},
	AuditStatusInProgress: {AuditStatusReview},
	AuditStatusReview:     {AuditStatusCompleted, AuditStatusClosed},
	AuditStatusCompleted:  {},
	AuditStatusClosed:     {},
}

// CanTransition reports whether moving an audit from one status to another is
// legal. Unknown statuses never transition.
func CanTransition(from, to AuditStatus) bool {
	for _, next := range validAuditTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ScopeFilter narrows which products an audit covers. Exactly one list is
// meaningful per audit type; full and free_scan audits carry no filter.
type ScopeFilter struct {
	Categories []string `json:"categories,omitempty"`
	Locations  []string `json:"locations,omitempty"`
	ProductIDs []string `json:"product_ids,omitempty"`
}

// Audit is the lifecycle header. The aggregate metric columns are a
// materialized view over the item set, written once at the in_progress ->
// review transition and frozen afterwards.
type Audit struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuditNo     string       `json:"audit_no" gorm:"type:varchar(30);not null;uniqueIndex"`
	Status      AuditStatus  `json:"status" gorm:"type:varchar(20);not null;index"`
	AuditType   AuditType    `json:"audit_type" gorm:"type:varchar(20);not null"`
	ScopeFilter *ScopeFilter `json:"scope_filter,omitempty" gorm:"type:jsonb;serializer:json"`
	AssignedTo  []uuid.UUID  `json:"assigned_to" gorm:"type:jsonb;serializer:json"`
	Note        *string      `json:"note,omitempty" gorm:"type:text"`

	// FrozenAt marks the baseline snapshot moment. Set exactly once, at
	// creation, atomically with the item snapshot.
	FrozenAt *time.Time `json:"frozen_at,omitempty"`

	TotalItems                 *int             `json:"total_items,omitempty"`
	TotalVariance              *int64           `json:"total_variance,omitempty"`
	AccuracyPercent            *decimal.Decimal `json:"accuracy_percent,omitempty" gorm:"type:decimal(5,2)"`
	LocationAccuracyPercent    *decimal.Decimal `json:"location_accuracy_percent,omitempty" gorm:"type:decimal(5,2)"`
	SafetyStockAccuracyPercent *decimal.Decimal `json:"safety_stock_accuracy_percent,omitempty" gorm:"type:decimal(5,2)"`
	TotalLocationMismatches    *int             `json:"total_location_mismatches,omitempty"`
	TotalSafetyStockMismatches *int             `json:"total_safety_stock_mismatches,omitempty"`

	AdjustmentID *uuid.UUID `json:"adjustment_id,omitempty" gorm:"type:uuid"`

	CreatedBy   uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	ReviewedBy  *uuid.UUID `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Audit) TableName() string {
	return "inv_audits"
}

// IsTerminal reports whether the audit accepts no further transitions or item
// mutation.
func (a *Audit) IsTerminal() bool {
	return a.Status == AuditStatusCompleted || a.Status == AuditStatusClosed
}

// AssignedToActor reports whether the given user is in the audit's assignee
// set.
func (a *Audit) AssignedToActor(userID uuid.UUID) bool {
	for _, id := range a.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

type AuditCreateRequest struct {
	AuditType   AuditType    `json:"audit_type" validate:"required,oneof=full category location custom free_scan"`
	ScopeFilter *ScopeFilter `json:"scope_filter,omitempty"`
	AssignedTo  []string     `json:"assigned_to" validate:"omitempty,dive,uuid"`
	Note        *string      `json:"note,omitempty" validate:"omitempty,max=500"`
}
