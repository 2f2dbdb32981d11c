package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement types. Every row corresponds 1:1 to a committed sale/purchase item
// insert or an explicit adjustment — the table is append-only.
const (
	MovementSale       = "SALE"
	MovementPurchase   = "PURCHASE"
	MovementAdjustment = "ADJUSTMENT"
)

// StockMovement is the audit trail of stock changes. Quantity is signed:
// positive = stock in, negative = stock out.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Quantity    int       `gorm:"not null"`
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Notes       string
	ReferenceID *uuid.UUID `gorm:"type:uuid"` // sale_id or purchase_id when applicable
	CreatedAt   time.Time  `gorm:"index"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
