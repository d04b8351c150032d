package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса пересечения
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceID is required", ErrInvalidInput)
	}

	return nil
}

// validateSuggestRequest валидирует входные данные запроса предложений
func validateSuggestRequest(req *SuggestRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceID is required", ErrInvalidInput)
	}

	if err := req.PreferredTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid preferredTime: %v", ErrInvalidInput, err)
	}

	return nil
}
