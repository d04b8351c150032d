package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidStatus возвращается при недопустимом статусе записи
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrCannotCancel возвращается, когда запись уже нельзя отменить
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
