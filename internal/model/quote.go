package model

import (
	"time"

	"github.com/google/uuid"
)

// Quote request workflow statuses. Transitions between them are free — the
// business imposes no ordering.
const (
	QuoteStatusPending   = "pending"
	QuoteStatusContacted = "contacted"
	QuoteStatusQuoted    = "quoted"
	QuoteStatusConverted = "converted"
	QuoteStatusCancelled = "cancelled"
)

// QuoteRequest is a public lead captured from the marketing site or catalog.
// Created unauthenticated, mutated only by staff. ProductName is captured
// denormalized so the lead survives product edits.
type QuoteRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null"`
	Email       string    `gorm:"not null"`
	Phone       *string
	Message     *string
	ProductID   *uuid.UUID `gorm:"type:uuid"`
	ProductName *string
	Status      string `gorm:"not null;default:'pending';index"`
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName pins the table to the original schema name.
func (QuoteRequest) TableName() string { return "quote_requests" }
