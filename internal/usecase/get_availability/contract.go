package get_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	availcache "github.com/lunanails/NS-BookingService/internal/infra/cache/availability"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	// GetActiveByIDs получает активные услуги по списку идентификаторов
	GetActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// CountActiveForDate возвращает занятость услуг за день: услуга -> слот -> занято мест
	CountActiveForDate(ctx context.Context, serviceIDs []uuid.UUID, date time.Time) (map[uuid.UUID]map[types.TimeString]int, error)
}

// CapacityRepository интерфейс репозитория переопределений вместимости
type CapacityRepository interface {
	// ListActiveForDate возвращает активные переопределения услуг за день
	ListActiveForDate(ctx context.Context, serviceIDs []uuid.UUID, date time.Time) (map[domain.OverrideKey]*domain.CapacityOverride, error)
}

// AvailabilityCache интерфейс кэша рассчитанной доступности.
// Ошибки кэша не прерывают расчет, промах или сбой ведет к пересчету из БД
type AvailabilityCache interface {
	Get(ctx context.Context, date time.Time, serviceIDs []uuid.UUID) (*availcache.Snapshot, error)
	Set(ctx context.Context, date time.Time, serviceIDs []uuid.UUID, snapshot *availcache.Snapshot) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
