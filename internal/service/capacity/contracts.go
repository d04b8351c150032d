package capacity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	catalogRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/catalog"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	UpdateCapacity(ctx context.Context, id uuid.UUID, update catalogRepo.CapacityUpdate) (*domain.Service, error)
}

// CapacityRepository интерфейс репозитория переопределений вместимости
type CapacityRepository interface {
	Upsert(ctx context.Context, override *domain.CapacityOverride) (*domain.CapacityOverride, error)
	ListByService(ctx context.Context, serviceID uuid.UUID, fromDate time.Time) ([]*domain.CapacityOverride, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Create(ctx context.Context, cust *domain.Customer) (*domain.Customer, error)
}

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	Add(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	ListActive(ctx context.Context, serviceID uuid.UUID, date *time.Time) ([]*domain.WaitlistEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
