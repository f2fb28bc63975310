package models

import (
	"time"

	"github.com/google/uuid"
)

const RoleAuditor = "auditor"

// Actor is the acting identity attached to every engine operation. It is
// resolved by the auth middleware and used only for attribution fields
// (created_by, counted_by, reviewed_by); permission resolution happens
// upstream.
type Actor struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// User is the read-only directory record behind the auditor picker.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string    `json:"username" gorm:"type:varchar(100);not null;uniqueIndex"`
	Role      string    `json:"role" gorm:"type:varchar(30);not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "us_users"
}

// AuditorRef is the trimmed shape returned to assignment pickers.
type AuditorRef struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}
