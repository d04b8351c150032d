package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a salon customer.
// Customers are keyed by email: booking twice with the same email reuses
// the same record instead of creating a duplicate.
type Customer struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	CreatedAt time.Time
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
