package domain

import (
	"time"

	"github.com/google/uuid"
)

// ServiceOffering represents an entry of a tenant's service catalog
// (read-side only here; catalog CRUD belongs to the settings surface)
type ServiceOffering struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	Category   *string
	Price      float64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
