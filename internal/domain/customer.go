package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer represents a tenant's customer (read-side only here;
// customer CRUD belongs to the customer management surface)
type Customer struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last" with empty parts trimmed away.
func (c *Customer) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// HasEmail returns true if the customer has a non-blank email address.
func (c *Customer) HasEmail() bool {
	return c.Email != nil && strings.TrimSpace(*c.Email) != ""
}
