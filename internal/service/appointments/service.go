package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	appointmentRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/appointment"
	"github.com/lunanails/NS-BookingService/internal/service/appointments/models"
)

// Service сервис администрирования записей
type Service struct {
	appointmentRepo AppointmentRepository
	calendarClient  CalendarSyncClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей.
// calendarClient может быть nil, тогда события календаря не трогаются
func NewService(
	appointmentRepo AppointmentRepository,
	calendarClient CalendarSyncClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		calendarClient:  calendarClient,
		logger:          logger,
	}
}

// GetByID получает запись по идентификатору
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: appointment=%s", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// List возвращает записи по фильтру
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: customer=%v, from=%v, to=%v, status=%v",
		req.CustomerID, req.FromDate, req.ToDate, req.Status)

	if req.Status != nil && !domain.AppointmentStatus(*req.Status).IsValid() {
		s.logger.Warn("List: invalid status %q", *req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointments(appointments), nil
}

// UpdateStatus переводит запись в новый статус
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment=%s, status=%s", req.AppointmentID, req.Status)

	status := domain.AppointmentStatus(req.Status)
	if !status.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status %q", req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, req.Status)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, req.AppointmentID, status); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, req.AppointmentID)
}

// Cancel отменяет запись. Отмена мягкая: статус становится cancelled,
// занятость слота освобождается, строка остается в БД
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: appointment=%s", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error: %v", err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s in status %s cannot be cancelled", id, appt.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrCannotCancel, appt.Status)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		s.logger.Error("Cancel: repository error: %v", err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Удаляем событие из календаря салона, сбой не откатывает отмену
	if s.calendarClient != nil && appt.CalendarEventID != nil {
		if err := s.calendarClient.DeleteEvent(ctx, *appt.CalendarEventID); err != nil {
			s.logger.Warn("Cancel: failed to delete calendar event %s: %v", *appt.CalendarEventID, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return s.GetByID(ctx, id)
}
