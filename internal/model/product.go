package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item (hydraulic part). Code is the human-readable SKU.
// Up to 3 photo URLs point into the public object-storage bucket.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code          string    `gorm:"uniqueIndex;not null"`
	Name          string    `gorm:"index;not null"`
	Description   *string
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	MinStock      int             `gorm:"not null;default:5"`
	Unit          string          `gorm:"not null;default:'un'"`
	Brand         *string
	Application   *string
	Photo1URL     *string
	Photo2URL     *string
	Photo3URL     *string
	IsActive      bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
