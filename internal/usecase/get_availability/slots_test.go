package get_availability

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/ptr"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

func TestGenerateTimeSlots(t *testing.T) {
	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
		step  int
		want  []types.TimeString
	}{
		{
			name:  "standard day with 30 minute step",
			start: "09:00",
			end:   "11:00",
			step:  30,
			want:  []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"},
		},
		{
			name:  "end time not on the grid",
			start: "09:00",
			end:   "10:15",
			step:  30,
			want:  []types.TimeString{"09:00", "09:30", "10:00"},
		},
		{
			name:  "single slot when start equals end",
			start: "09:00",
			end:   "09:00",
			step:  30,
			want:  []types.TimeString{"09:00"},
		},
		{
			name:  "empty when start after end",
			start: "18:00",
			end:   "09:00",
			step:  30,
			want:  []types.TimeString{},
		},
		{
			name:  "grid stops at the end of day",
			start: "23:00",
			end:   "23:59",
			step:  45,
			want:  []types.TimeString{"23:00", "23:45"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generateTimeSlots(tt.start, tt.end, tt.step)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSlotParameters(t *testing.T) {
	service := &domain.Service{
		ID:                  uuid.New(),
		Name:                "Маникюр",
		DefaultStartTime:    ptr.Ptr(types.TimeString("10:00")),
		DefaultEndTime:      ptr.Ptr(types.TimeString("20:00")),
		SlotDurationMinutes: ptr.Ptr(45),
	}

	t.Run("service parameters win over defaults", func(t *testing.T) {
		params := resolveSlotParameters(&Request{}, []*domain.Service{service})
		assert.Equal(t, types.TimeString("10:00"), params.StartTime)
		assert.Equal(t, types.TimeString("20:00"), params.EndTime)
		assert.Equal(t, 45, params.SlotDurationMinutes)
	})

	t.Run("request overrides win over service parameters", func(t *testing.T) {
		req := &Request{
			StartTime:           ptr.Ptr(types.TimeString("12:00")),
			SlotDurationMinutes: ptr.Ptr(15),
		}
		params := resolveSlotParameters(req, []*domain.Service{service})
		assert.Equal(t, types.TimeString("12:00"), params.StartTime)
		assert.Equal(t, types.TimeString("20:00"), params.EndTime)
		assert.Equal(t, 15, params.SlotDurationMinutes)
	})

	t.Run("system defaults when service has no configuration", func(t *testing.T) {
		bare := &domain.Service{ID: uuid.New(), Name: "Педикюр"}
		params := resolveSlotParameters(&Request{}, []*domain.Service{bare})
		assert.Equal(t, domain.DefaultStartTime, params.StartTime)
		assert.Equal(t, domain.DefaultEndTime, params.EndTime)
		assert.Equal(t, domain.DefaultSlotDurationMinutes, params.SlotDurationMinutes)
	})
}

func TestBuildServiceAvailability(t *testing.T) {
	serviceID := uuid.New()
	service := &domain.Service{
		ID:                 serviceID,
		Name:               "Маникюр",
		MaxBookingsPerSlot: 3,
	}
	slots := []types.TimeString{"09:00", "09:30", "10:00"}

	t.Run("bookings reduce availability", func(t *testing.T) {
		booked := map[types.TimeString]int{"09:00": 2, "09:30": 3}
		result := buildServiceAvailability(service, slots, booked, nil)

		require.Len(t, result.TimeSlots, 3)
		assert.Equal(t, serviceID, result.ServiceID)
		assert.Equal(t, "Маникюр", result.ServiceName)

		assert.Equal(t, 1, result.TimeSlots[0].AvailableSlots)
		assert.True(t, result.TimeSlots[0].IsAvailable)

		assert.Equal(t, 0, result.TimeSlots[1].AvailableSlots)
		assert.False(t, result.TimeSlots[1].IsAvailable)

		assert.Equal(t, 3, result.TimeSlots[2].AvailableSlots)
		assert.True(t, result.TimeSlots[2].IsAvailable)
	})

	t.Run("overbooked slot clamps to zero", func(t *testing.T) {
		booked := map[types.TimeString]int{"09:00": 5}
		result := buildServiceAvailability(service, slots, booked, nil)

		assert.Equal(t, 0, result.TimeSlots[0].AvailableSlots)
		assert.Equal(t, 5, result.TimeSlots[0].CurrentBookings)
		assert.False(t, result.TimeSlots[0].IsAvailable)
	})

	t.Run("active override wins over service capacity", func(t *testing.T) {
		overrides := map[domain.OverrideKey]*domain.CapacityOverride{
			{ServiceID: serviceID, Time: "09:30"}: {MaxBookings: 10, IsActive: true},
		}
		result := buildServiceAvailability(service, slots, nil, overrides)

		assert.Equal(t, 3, result.TimeSlots[0].MaxCapacity)
		assert.Equal(t, 10, result.TimeSlots[1].MaxCapacity)
		assert.Equal(t, 10, result.TimeSlots[1].AvailableSlots)
	})

	t.Run("zero override closes the slot", func(t *testing.T) {
		overrides := map[domain.OverrideKey]*domain.CapacityOverride{
			{ServiceID: serviceID, Time: "10:00"}: {MaxBookings: 0, IsActive: true},
		}
		result := buildServiceAvailability(service, slots, nil, overrides)

		assert.Equal(t, 0, result.TimeSlots[2].MaxCapacity)
		assert.False(t, result.TimeSlots[2].IsAvailable)
	})
}
