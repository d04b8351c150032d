package domain

import "github.com/lunanails/NS-BookingService/pkg/types"

// System-wide slot grid defaults, applied when a service has not configured
// its own operating hours or slot duration.
const (
	DefaultStartTime           = types.TimeString("09:00")
	DefaultEndTime             = types.TimeString("18:00")
	DefaultSlotDurationMinutes = 30

	// DefaultMaxBookingsPerSlot capacity per service per slot when the
	// service record does not set one
	DefaultMaxBookingsPerSlot = 1
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinBookingsPerSlot     = 1
	MaxBookingsPerSlot     = 100
	MaxNotesLength         = 500
	MaxReasonLength        = 500

	// MaxSuggestions верхняя граница количества альтернативных слотов,
	// предлагаемых при конфликте
	MaxSuggestions = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
