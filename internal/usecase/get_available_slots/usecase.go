package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/internal/usecase/get_availability"
)

// UseCase use case поиска слотов, доступных сразу для набора услуг
type UseCase struct {
	availability AvailabilityProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityProvider, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		logger:       logger,
	}
}

// Execute возвращает слоты дня, в которых каждая из запрошенных услуг
// имеет свободные места
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, services=%d",
		req.Date.Format(domain.DateFormat), len(req.ServiceIDs))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	availability, err := uc.getAvailability(ctx, req.Date, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	slots := intersectAvailability(availability.Services)

	uc.logger.Info("GetAvailableSlots: found %d common slots for %d services on %s",
		len(slots), len(req.ServiceIDs), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}

// Suggest возвращает ближайшие к желаемому времени слоты, доступные для
// всех запрошенных услуг. Используется при конфликте бронирования
func (uc *UseCase) Suggest(ctx context.Context, req *SuggestRequest) (*SuggestResponse, error) {
	uc.logger.Info("GetAvailableSlots: suggest near %s on %s for %d services",
		req.PreferredTime, req.Date.Format(domain.DateFormat), len(req.ServiceIDs))

	if err := validateSuggestRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: suggest validation failed: %v", err)
		return nil, err
	}

	availability, err := uc.getAvailability(ctx, req.Date, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	slots := intersectAvailability(availability.Services)
	suggestions := suggestNearest(slots, req.PreferredTime)

	return &SuggestResponse{
		Date:          req.Date,
		PreferredTime: req.PreferredTime,
		Suggestions:   suggestions,
	}, nil
}

func (uc *UseCase) getAvailability(ctx context.Context, date time.Time, serviceIDs []uuid.UUID) (*get_availability.Response, error) {
	availability, err := uc.availability.Execute(ctx, &get_availability.Request{
		Date:       date,
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		if errors.Is(err, get_availability.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, get_availability.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	return availability, nil
}
