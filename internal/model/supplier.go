package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier mirrors Customer's shape. The two are independent entities with no
// cross-reference between them.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Email     *string
	Phone     *string
	Document  *string
	Address   *string
	City      *string
	State     *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
