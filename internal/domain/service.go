package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/pkg/types"
)

// Service represents a salon service from the catalog.
// Capacity fields are optional: when unset, system-wide defaults apply.
type Service struct {
	ID              uuid.UUID
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	ImageURL        *string
	IsActive        bool

	// Capacity configuration
	MaxBookingsPerSlot  int
	DefaultStartTime    *types.TimeString
	DefaultEndTime      *types.TimeString
	SlotDurationMinutes *int
	BufferTimeMinutes   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotParameters describes the grid a service's day is divided into.
type SlotParameters struct {
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
}

// SlotParameters returns the service's configured grid parameters,
// falling back to system defaults for any field the service leaves unset.
func (s *Service) SlotParameters() SlotParameters {
	params := SlotParameters{
		StartTime:           DefaultStartTime,
		EndTime:             DefaultEndTime,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
	}
	if s.DefaultStartTime != nil && !s.DefaultStartTime.IsZero() {
		params.StartTime = *s.DefaultStartTime
	}
	if s.DefaultEndTime != nil && !s.DefaultEndTime.IsZero() {
		params.EndTime = *s.DefaultEndTime
	}
	if s.SlotDurationMinutes != nil && *s.SlotDurationMinutes > 0 {
		params.SlotDurationMinutes = *s.SlotDurationMinutes
	}
	return params
}

// BaseCapacity returns the service's per-slot capacity before overrides.
func (s *Service) BaseCapacity() int {
	if s.MaxBookingsPerSlot > 0 {
		return s.MaxBookingsPerSlot
	}
	return DefaultMaxBookingsPerSlot
}

// EffectiveCapacity resolves the applicable capacity for one slot:
// an active override wins, otherwise the service default, otherwise 1.
func EffectiveCapacity(s *Service, override *CapacityOverride) int {
	if override != nil && override.IsActive {
		return override.MaxBookings
	}
	return s.BaseCapacity()
}
