package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the product master. The engine only ever reads it, except for
// the storage-location correction applied by the adjustment generator.
type Product struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductCode     string    `json:"product_code" gorm:"type:varchar(50);not null;uniqueIndex"`
	ProductName     string    `json:"product_name" gorm:"type:varchar(255);not null"`
	ProductCategory *string   `json:"product_category,omitempty" gorm:"type:varchar(100);index"`
	StorageLocation *string   `json:"storage_location,omitempty" gorm:"type:varchar(100)"`
	IsActive        bool      `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "pr_products"
}

// StockBalance is the system-of-record on-hand position per product. The
// snapshotter reads it exactly once per audit; missing rows default to zero.
type StockBalance struct {
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;primaryKey"`
	OnHand      int64     `json:"on_hand" gorm:"not null;default:0"`
	SafetyStock int64     `json:"safety_stock" gorm:"not null;default:0"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (StockBalance) TableName() string {
	return "inv_stock_balances"
}
