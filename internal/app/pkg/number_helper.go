package pkg

import (
	"fmt"
	"math/rand"
	"time"
)

// DocumentNumber builds a date-coded document number with a random 4-digit
// suffix, e.g. "AUDIT-20250901-4821". Uniqueness is practical, not
// guaranteed; the storage layer carries a unique index as the backstop.
func DocumentNumber(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%d", prefix, t.Format("20060102"), 1000+rand.Intn(9000))
}

// AuditNumber generates a number for a new audit header.
func AuditNumber(t time.Time) string {
	return DocumentNumber("AUDIT", t)
}

// AdjustmentNumber generates a number for an audit-sourced stock adjustment.
func AdjustmentNumber(t time.Time) string {
	return DocumentNumber("ADJ-AUDIT", t)
}
