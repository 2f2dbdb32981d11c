package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale status values. Creation always writes COMPLETED; PENDING exists in the
// enum for imported/legacy rows but no client-side workflow produces it.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusPending   = "PENDING"
	SaleStatusCancelled = "CANCELLED"
)

// Sale is the header row. Total is derived from its items at creation time
// inside the same transaction that writes them.
type Sale struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'COMPLETED'"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt  time.Time       `gorm:"index"`
	UpdatedAt  time.Time

	Customer *Customer  `gorm:"foreignKey:CustomerID"`
	Items    []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem snapshots the unit price at sale time — later Product.UnitPrice
// changes never rewrite history.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Qty       int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
