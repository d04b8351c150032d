package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/pkg/types"
)

// WaitlistStatus статус записи в листе ожидания
type WaitlistStatus string

const (
	WaitlistActive   WaitlistStatus = "active"
	WaitlistNotified WaitlistStatus = "notified"
	WaitlistExpired  WaitlistStatus = "expired"
)

// WaitlistEntry is a customer's request to be notified when a fully booked
// slot frees up.
type WaitlistEntry struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	ServiceID     uuid.UUID
	PreferredDate time.Time
	PreferredTime types.TimeString
	Status        WaitlistStatus
	CreatedAt     time.Time
}
