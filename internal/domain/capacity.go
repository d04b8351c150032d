package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/pkg/types"
)

// CapacityOverride supersedes a service's default per-slot capacity for one
// exact (date, time) slot. Logically deleted via IsActive, never removed.
type CapacityOverride struct {
	ID          uuid.UUID
	ServiceID   uuid.UUID
	Date        time.Time
	Time        types.TimeString
	MaxBookings int
	Reason      *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OverrideKey адресует слот внутри одного дня
type OverrideKey struct {
	ServiceID uuid.UUID
	Time      types.TimeString
}
