package check_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
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

	return nil
}
