package models

import (
	"time"

	"github.com/google/uuid"
)

type CountLogType string

const (
	CountLogTypeCount CountLogType = "count"
)

// CountLog is the append-only trail of count submissions. Every submission
// writes a new row, including re-counts of the same item; current state lives
// on the AuditItem, the log exists purely for traceability.
type CountLog struct {
	ID                 uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuditItemID        uuid.UUID    `json:"audit_item_id" gorm:"type:uuid;not null;index"`
	LogType            CountLogType `json:"log_type" gorm:"type:varchar(20);not null;default:'count'"`
	CountedQty         int64        `json:"counted_qty" gorm:"not null"`
	ActualLocation     *string      `json:"actual_location,omitempty" gorm:"type:varchar(100)"`
	CountedSafetyStock *int64       `json:"counted_safety_stock,omitempty"`
	CountedBy          uuid.UUID    `json:"counted_by" gorm:"type:uuid;not null"`
	CountedAt          time.Time    `json:"counted_at" gorm:"not null"`
}

func (CountLog) TableName() string {
	return "inv_audit_count_logs"
}
