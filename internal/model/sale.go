package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a committed PDV checkout. Total = Subtotal - Discount.
// Items capture product name and price at commit time, so historical sales
// are immune to later product edits.
type Sale struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleNumber    int        `gorm:"uniqueIndex;not null"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string          `gorm:"not null"` // cash | credit | debit | pix | transfer | boleto
	Status        string          `gorm:"not null;default:'completed'"` // pending | completed | cancelled
	Notes         *string
	CreatedAt     time.Time

	Customer *Customer  `gorm:"foreignKey:CustomerID"`
	User     *User      `gorm:"foreignKey:UserID"`
	Items    []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem is one cart line frozen at checkout.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
