package capacity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	capacityRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/capacity"
	catalogRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/catalog"
	customerRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/customer"
	"github.com/lunanails/NS-BookingService/internal/service/capacity/models"
)

// Service сервис администрирования вместимости слотов
type Service struct {
	catalogRepo  CatalogRepository
	capacityRepo CapacityRepository
	customerRepo CustomerRepository
	waitlistRepo WaitlistRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса вместимости
func NewService(
	catalogRepo CatalogRepository,
	capacityRepo CapacityRepository,
	customerRepo CustomerRepository,
	waitlistRepo WaitlistRepository,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo:  catalogRepo,
		capacityRepo: capacityRepo,
		customerRepo: customerRepo,
		waitlistRepo: waitlistRepo,
		logger:       logger,
	}
}

// GetServiceConfig получает настройки вместимости услуги
func (s *Service) GetServiceConfig(ctx context.Context, serviceID uuid.UUID) (*models.ServiceCapacityResponse, error) {
	s.logger.Info("GetServiceConfig: service=%s", serviceID)

	service, err := s.catalogRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetServiceConfig: service id=%s not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetServiceConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetServiceConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// UpdateServiceCapacity обновляет настройки вместимости услуги
func (s *Service) UpdateServiceCapacity(ctx context.Context, req *models.UpdateServiceCapacityRequest) (*models.ServiceCapacityResponse, error) {
	s.logger.Info("UpdateServiceCapacity: service=%s, maxBookings=%d", req.ServiceID, req.MaxBookingsPerSlot)

	// 1. Валидируем входные данные
	if err := s.validateCapacityData(req); err != nil {
		s.logger.Warn("UpdateServiceCapacity: validation failed: %v", err)
		return nil, err
	}

	// 2. Обновляем настройки
	update := catalogRepo.CapacityUpdate{
		MaxBookingsPerSlot:  req.MaxBookingsPerSlot,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		BufferTimeMinutes:   req.BufferTimeMinutes,
	}

	service, err := s.catalogRepo.UpdateCapacity(ctx, req.ServiceID, update)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateServiceCapacity: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateServiceCapacity: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateServiceCapacity - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateServiceCapacity: successfully updated service id=%s", req.ServiceID)
	return models.FromDomainService(service), nil
}

// SetOverride устанавливает переопределение вместимости одного слота.
// Повторная установка на тот же слот перезаписывает предыдущую
func (s *Service) SetOverride(ctx context.Context, req *models.SetOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("SetOverride: service=%s, date=%s, time=%s, maxBookings=%d",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.Time, req.MaxBookings)

	// 1. Валидируем входные данные
	if err := s.validateOverrideData(req); err != nil {
		s.logger.Warn("SetOverride: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование услуги
	if _, err := s.catalogRepo.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("SetOverride: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("SetOverride: failed to get service: %v", err)
		return nil, fmt.Errorf("%w: SetOverride - failed to get service: %v", ErrInternal, err)
	}

	// 3. Создаем или обновляем переопределение
	override, err := s.capacityRepo.Upsert(ctx, &domain.CapacityOverride{
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		MaxBookings: req.MaxBookings,
		Reason:      req.Reason,
	})
	if err != nil {
		s.logger.Error("SetOverride: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetOverride: successfully set override id=%s", override.ID)
	return models.FromDomainOverride(override), nil
}

// ListOverrides возвращает переопределения услуги начиная с указанной даты
func (s *Service) ListOverrides(ctx context.Context, serviceID uuid.UUID, fromDate time.Time) (*models.OverrideListResponse, error) {
	s.logger.Info("ListOverrides: service=%s, from=%s", serviceID, fromDate.Format(domain.DateFormat))

	overrides, err := s.capacityRepo.ListByService(ctx, serviceID, fromDate)
	if err != nil {
		s.logger.Error("ListOverrides: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOverrides - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOverrides(overrides), nil
}

// DeactivateOverride выключает переопределение, слот возвращается к базовой
// вместимости услуги
func (s *Service) DeactivateOverride(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("DeactivateOverride: id=%s", id)

	if err := s.capacityRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, capacityRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeactivateOverride: override id=%s not found", id)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeactivateOverride: repository error: %v", err)
		return fmt.Errorf("%w: DeactivateOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateOverride: successfully deactivated override id=%s", id)
	return nil
}

// AddToWaitlist добавляет клиента в лист ожидания занятого слота.
// Клиент находится или создается по email
func (s *Service) AddToWaitlist(ctx context.Context, req *models.AddToWaitlistRequest) (*models.WaitlistEntryResponse, error) {
	s.logger.Info("AddToWaitlist: email=%s, service=%s, date=%s, time=%s",
		req.Email, req.ServiceID, req.PreferredDate.Format(domain.DateFormat), req.PreferredTime)

	// 1. Валидируем входные данные
	if err := s.validateWaitlistData(req); err != nil {
		s.logger.Warn("AddToWaitlist: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование услуги
	if _, err := s.catalogRepo.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("AddToWaitlist: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("AddToWaitlist: failed to get service: %v", err)
		return nil, fmt.Errorf("%w: AddToWaitlist - failed to get service: %v", ErrInternal, err)
	}

	// 3. Находим или создаем клиента
	customer, err := s.customerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Error("AddToWaitlist: failed to get customer: %v", err)
			return nil, fmt.Errorf("%w: AddToWaitlist - failed to get customer: %v", ErrInternal, err)
		}

		customer, err = s.customerRepo.Create(ctx, &domain.Customer{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		})
		if err != nil {
			s.logger.Error("AddToWaitlist: failed to create customer: %v", err)
			return nil, fmt.Errorf("%w: AddToWaitlist - failed to create customer: %v", ErrInternal, err)
		}
	}

	// 4. Добавляем запись ожидания
	entry, err := s.waitlistRepo.Add(ctx, &domain.WaitlistEntry{
		CustomerID:    customer.ID,
		ServiceID:     req.ServiceID,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
	})
	if err != nil {
		s.logger.Error("AddToWaitlist: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddToWaitlist - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddToWaitlist: successfully added entry id=%s", entry.ID)
	return models.FromDomainWaitlistEntry(entry), nil
}

// ListWaitlist возвращает активные записи ожидания услуги
func (s *Service) ListWaitlist(ctx context.Context, serviceID uuid.UUID, date *time.Time) (*models.WaitlistResponse, error) {
	s.logger.Info("ListWaitlist: service=%s", serviceID)

	entries, err := s.waitlistRepo.ListActive(ctx, serviceID, date)
	if err != nil {
		s.logger.Error("ListWaitlist: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListWaitlist - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWaitlist(entries), nil
}

// validateCapacityData проверяет границы настроек вместимости услуги
func (s *Service) validateCapacityData(req *models.UpdateServiceCapacityRequest) error {
	if req.MaxBookingsPerSlot < domain.MinBookingsPerSlot || req.MaxBookingsPerSlot > domain.MaxBookingsPerSlot {
		return fmt.Errorf("%w: maxBookingsPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinBookingsPerSlot, domain.MaxBookingsPerSlot)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
	}
	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
	}
	if req.StartTime != nil && req.EndTime != nil && !req.StartTime.IsBefore(*req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.SlotDurationMinutes != nil {
		if *req.SlotDurationMinutes < domain.MinSlotDurationMinutes || *req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: slotDuration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
	}

	if req.BufferTimeMinutes != nil && *req.BufferTimeMinutes < 0 {
		return fmt.Errorf("%w: bufferTime must not be negative", ErrInvalidInput)
	}

	return nil
}

// validateOverrideData проверяет данные переопределения слота
func (s *Service) validateOverrideData(req *models.SetOverrideRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	// Ноль допустим: слот полностью закрывается для бронирования
	if req.MaxBookings < 0 || req.MaxBookings > domain.MaxBookingsPerSlot {
		return fmt.Errorf("%w: maxBookings must be between 0 and %d", ErrInvalidInput, domain.MaxBookingsPerSlot)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}

// validateWaitlistData проверяет данные заявки в лист ожидания
func (s *Service) validateWaitlistData(req *models.AddToWaitlistRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("%w: last name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	if req.PreferredDate.IsZero() {
		return fmt.Errorf("%w: preferredDate is required", ErrInvalidInput)
	}

	if err := req.PreferredTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid preferredTime: %v", ErrInvalidInput, err)
	}

	return nil
}
