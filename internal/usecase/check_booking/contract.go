package check_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	// GetActiveByIDs получает активные услуги по списку идентификаторов
	GetActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// CountActiveAt возвращает занятые места услуги на конкретном слоте
	CountActiveAt(ctx context.Context, serviceID uuid.UUID, date time.Time, slotTime types.TimeString) (int, error)
}

// CapacityRepository интерфейс репозитория переопределений вместимости
type CapacityRepository interface {
	// GetActiveAt возвращает активное переопределение слота либо nil
	GetActiveAt(ctx context.Context, serviceID uuid.UUID, date time.Time, slotTime types.TimeString) (*domain.CapacityOverride, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
