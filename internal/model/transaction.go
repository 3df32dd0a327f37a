package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Financial transaction reference types. Entries referencing a sale or a
// purchase are created by those flows and cannot be deleted; only "manual"
// entries are user-deletable.
const (
	RefManual   = "manual"
	RefSale     = "sale"
	RefPurchase = "purchase"
)

// FinancialTransaction is one ledger entry, income or expense. Amount is
// always positive; Type carries the sign. TransactionDate is a plain
// YYYY-MM-DD date compared inclusively when filtering by period.
type FinancialTransaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type          string          `gorm:"not null;index"` // income | expense
	Category      string          `gorm:"not null"`
	Description   string          `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod *string
	ReferenceType *string    `gorm:"index"`
	ReferenceID   *uuid.UUID `gorm:"type:uuid"`
	UserID        *uuid.UUID `gorm:"type:uuid"`
	TransactionDate string   `gorm:"type:date;not null;index"`
	CreatedAt     time.Time
}

// TableName pins the table to the original schema name.
func (FinancialTransaction) TableName() string { return "financial_transactions" }
