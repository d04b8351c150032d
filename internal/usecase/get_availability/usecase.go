package get_availability

import (
	"context"
	"fmt"

	"github.com/lunanails/NS-BookingService/internal/domain"
	availcache "github.com/lunanails/NS-BookingService/internal/infra/cache/availability"
)

// UseCase use case расчета доступности услуг по слотам на день
type UseCase struct {
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	capacityRepo    CapacityRepository
	cache           AvailabilityCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// cache может быть nil, тогда расчет всегда идет из БД
func NewUseCase(
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	capacityRepo CapacityRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		capacityRepo:    capacityRepo,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет расчет доступности на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s, services=%d",
		req.Date.Format(domain.DateFormat), len(req.ServiceIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Пробуем кэш. Переопределения сетки делают снимок нерепрезентативным,
	// поэтому кэш используется только для запросов без них
	useCache := uc.cache != nil && !req.SkipCache &&
		req.StartTime == nil && req.EndTime == nil && req.SlotDurationMinutes == nil
	if useCache {
		snapshot, err := uc.cache.Get(ctx, req.Date, req.ServiceIDs)
		if err == nil {
			uc.logger.Info("GetAvailability: cache hit for date=%s", req.Date.Format(domain.DateFormat))
			return &Response{
				Date:        req.Date,
				Services:    snapshot.Services,
				LastUpdated: snapshot.LastUpdated,
			}, nil
		}
		if err != availcache.ErrCacheMiss {
			uc.logger.Warn("GetAvailability: cache get failed: %v", err)
		}
	}

	// 3. Получаем активные услуги
	services, err := uc.catalogRepo.GetActiveByIDs(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	if len(services) != len(req.ServiceIDs) {
		uc.logger.Warn("GetAvailability: requested %d services, found %d active",
			len(req.ServiceIDs), len(services))
		return nil, ErrServiceNotFound
	}

	// 4. Одна общая сетка слотов на весь запрос
	params := resolveSlotParameters(req, services)
	slots, err := generateTimeSlots(params.StartTime, params.EndTime, params.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 5. Занятость и переопределения всех услуг за день, по одному запросу
	bookedCounts, err := uc.appointmentRepo.CountActiveForDate(ctx, req.ServiceIDs, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	overrides, err := uc.capacityRepo.ListActiveForDate(ctx, req.ServiceIDs, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get capacity overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get capacity overrides: %v", ErrInternal, err)
	}

	// 6. Собираем сетку доступности каждой услуги
	result := make([]domain.ServiceAvailability, len(services))
	for i, service := range services {
		result[i] = buildServiceAvailability(service, slots, bookedCounts[service.ID], overrides)
	}

	now := uc.timeProvider.Now()
	response := &Response{
		Date:        req.Date,
		Services:    result,
		LastUpdated: now,
	}

	// 7. Сохраняем снимок в кэш, сбой не влияет на ответ
	if useCache {
		snapshot := &availcache.Snapshot{Services: result, LastUpdated: now}
		if err := uc.cache.Set(ctx, req.Date, req.ServiceIDs, snapshot); err != nil {
			uc.logger.Warn("GetAvailability: cache set failed: %v", err)
		}
	}

	uc.logger.Info("GetAvailability: calculated %d slots for %d services on %s",
		len(slots), len(services), req.Date.Format(domain.DateFormat))

	return response, nil
}
