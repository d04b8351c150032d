package check_booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
)

// UseCase use case проверки вместимости слота перед бронированием
type UseCase struct {
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	capacityRepo    CapacityRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	capacityRepo CapacityRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		capacityRepo:    capacityRepo,
		logger:          logger,
	}
}

// Execute проверяет, хватает ли мест каждой услуге бронирования на слоте.
// Проверка не резервирует места: координатор бронирования повторяет ее
// непосредственно перед записью
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckBooking: date=%s, time=%s, items=%d",
		req.Date.Format(domain.DateFormat), req.Time, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем активные услуги
	serviceIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		serviceIDs = append(serviceIDs, item.ServiceID)
	}

	services, err := uc.catalogRepo.GetActiveByIDs(ctx, serviceIDs)
	if err != nil {
		uc.logger.Error("CheckBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	if len(services) != len(req.Items) {
		uc.logger.Warn("CheckBooking: requested %d services, found %d active",
			len(req.Items), len(services))
		return nil, ErrServiceNotFound
	}

	servicesByID := make(map[uuid.UUID]*domain.Service, len(services))
	for _, service := range services {
		servicesByID[service.ID] = service
	}

	// 3. Проверяем каждую услугу: занято + требуемое количество <= вместимость
	conflicts := make([]string, 0)
	for _, item := range req.Items {
		service := servicesByID[item.ServiceID]

		override, err := uc.capacityRepo.GetActiveAt(ctx, item.ServiceID, req.Date, req.Time)
		if err != nil {
			uc.logger.Error("CheckBooking: failed to get capacity override for service=%s: %v",
				item.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get capacity override: %v", ErrInternal, err)
		}
		capacity := domain.EffectiveCapacity(service, override)

		booked, err := uc.appointmentRepo.CountActiveAt(ctx, item.ServiceID, req.Date, req.Time)
		if err != nil {
			uc.logger.Error("CheckBooking: failed to count bookings for service=%s: %v",
				item.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}

		if booked+item.Quantity > capacity {
			uc.logger.Info("CheckBooking: conflict for service=%s: booked=%d, requested=%d, capacity=%d",
				item.ServiceID, booked, item.Quantity, capacity)
			conflicts = append(conflicts, service.Name)
		}
	}

	return &Response{
		CanBook:   len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}
