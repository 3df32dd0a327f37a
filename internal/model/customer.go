package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a buyer record. Only the name is mandatory — walk-in sales
// reference no customer at all.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Email     *string
	Phone     *string
	Document  *string // CPF/CNPJ
	Address   *string
	City      *string
	State     *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
