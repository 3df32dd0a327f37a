package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products in the public catalog (bombas, cilindros, caixas
// de direção, kits de reparo…). Products hold a weak reference: deleting a
// category does not cascade.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null"`
	Slug        string    `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
}

// TableName overrides GORM's default pluralization (categories, not categorys).
func (Category) TableName() string { return "categories" }
