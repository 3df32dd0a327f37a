package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is a stock-in order from a supplier. Committing one increments
// stock and appends an expense ledger entry, mirroring the sale flow.
type Purchase struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseNumber int        `gorm:"uniqueIndex;not null"`
	SupplierID     *uuid.UUID `gorm:"type:uuid;index"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status         string          `gorm:"not null;default:'completed'"`
	InvoiceNumber  *string
	Notes          *string
	CreatedAt      time.Time

	Supplier *Supplier      `gorm:"foreignKey:SupplierID"`
	User     *User          `gorm:"foreignKey:UserID"`
	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID"`
}

// PurchaseItem captures the product name and unit cost at commit time.
type PurchaseItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
