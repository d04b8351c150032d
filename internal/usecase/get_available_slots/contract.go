package get_available_slots

import (
	"context"

	"github.com/lunanails/NS-BookingService/internal/usecase/get_availability"
)

// AvailabilityProvider интерфейс расчета доступности по слотам.
// Пересечение строится поверх результата этого расчета
type AvailabilityProvider interface {
	Execute(ctx context.Context, req *get_availability.Request) (*get_availability.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
