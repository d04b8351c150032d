package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда хотя бы одна из запрошенных услуг не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
