package domain

import (
	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/pkg/types"
)

// TimeSlotAvailability describes one slot of one service's day grid.
type TimeSlotAvailability struct {
	Time            types.TimeString
	MaxCapacity     int
	CurrentBookings int
	AvailableSlots  int
	IsAvailable     bool
}

// IsFull returns true if no capacity remains in the slot.
func (s *TimeSlotAvailability) IsFull() bool {
	return s.AvailableSlots <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100).
func (s *TimeSlotAvailability) OccupancyRate() float64 {
	if s.MaxCapacity == 0 {
		return 0
	}
	return float64(s.CurrentBookings) / float64(s.MaxCapacity) * 100
}

// ServiceAvailability is the per-service availability grid for one date.
type ServiceAvailability struct {
	ServiceID   uuid.UUID
	ServiceName string
	TimeSlots   []TimeSlotAvailability
}

// SlotAt returns the slot with the given label, or nil if the label is not
// on this service's grid.
func (a *ServiceAvailability) SlotAt(t types.TimeString) *TimeSlotAvailability {
	for i := range a.TimeSlots {
		if a.TimeSlots[i].Time == t {
			return &a.TimeSlots[i]
		}
	}
	return nil
}
