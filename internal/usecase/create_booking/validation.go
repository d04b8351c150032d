package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/lunanails/NS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if strings.TrimSpace(req.Customer.FirstName) == "" {
		return fmt.Errorf("%w: customer first name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Customer.LastName) == "" {
		return fmt.Errorf("%w: customer last name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Customer.Email) == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if isDateInPast(req.Date, now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		key := item.ServiceID.String()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate serviceID %s", ErrInvalidInput, key)
		}
		seen[key] = struct{}{}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
