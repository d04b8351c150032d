package calendarsync

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarsync client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("calendarsync client: invalid response")

	// ErrEventNotFound возвращается, когда событие не найдено в календаре
	ErrEventNotFound = errors.New("calendar event not found")
)
