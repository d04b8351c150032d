package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/internal/integrations/calendarsync"
	"github.com/lunanails/NS-BookingService/internal/integrations/mailer"
	"github.com/lunanails/NS-BookingService/internal/usecase/check_booking"
	"github.com/lunanails/NS-BookingService/internal/usecase/get_available_slots"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	LinkServices(ctx context.Context, appointmentID uuid.UUID, items []domain.AppointmentService) error
	SetCalendarEventID(ctx context.Context, id uuid.UUID, eventID string) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Create(ctx context.Context, cust *domain.Customer) (*domain.Customer, error)
}

// CapacityChecker интерфейс проверки вместимости слота.
// Используется дважды: до создания клиента и финальной перепроверкой
// внутри транзакции записи
type CapacityChecker interface {
	Execute(ctx context.Context, req *check_booking.Request) (*check_booking.Response, error)
}

// SlotSuggester интерфейс подбора альтернативных слотов при конфликте
type SlotSuggester interface {
	Suggest(ctx context.Context, req *get_available_slots.SuggestRequest) (*get_available_slots.SuggestResponse, error)
}

// CalendarSyncClient интерфейс клиента календаря салона
type CalendarSyncClient interface {
	CreateEvent(ctx context.Context, event *calendarsync.EventRequest) (string, error)
}

// MailerClient интерфейс почтового клиента
type MailerClient interface {
	SendConfirmation(ctx context.Context, confirmation *mailer.ConfirmationRequest) error
	SendAdminNotification(ctx context.Context, notification *mailer.AdminNotificationRequest) error
}

// AvailabilityInvalidator интерфейс сброса кэша доступности
type AvailabilityInvalidator interface {
	InvalidateDate(ctx context.Context, date time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
