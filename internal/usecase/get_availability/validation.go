package get_availability

import (
	"fmt"

	"github.com/lunanails/NS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceID is required", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
	}
	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
	}
	if req.StartTime != nil && req.EndTime != nil && !req.StartTime.IsBefore(*req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.SlotDurationMinutes != nil {
		if *req.SlotDurationMinutes < domain.MinSlotDurationMinutes || *req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: slotDuration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
	}

	return nil
}
