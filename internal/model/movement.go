package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement types.
const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementAdjustment = "adjustment"
)

// StockMovement records every change to a product's stock quantity.
// Append-only audit trail; never mutated after creation. Quantity is signed:
// positive = stock in, negative = stock out.
type StockMovement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Type          string    `gorm:"not null"`
	Quantity      int       `gorm:"not null"`
	ReferenceType *string    // sale | purchase | adjustment
	ReferenceID   *uuid.UUID `gorm:"type:uuid"`
	Notes         *string
	UserID        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName pins the table to the original schema name.
func (StockMovement) TableName() string { return "stock_movements" }
