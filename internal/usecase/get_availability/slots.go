package get_availability

import (
	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// generateTimeSlots генерирует сетку слотов дня от startTime до endTime
// включительно с фиксированным шагом stepMinutes.
// Слот с временем ровно endTime входит в сетку: день из "09:00"-"18:00"
// с шагом 30 заканчивается слотом "18:00"
func generateTimeSlots(startTime, endTime types.TimeString, stepMinutes int) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)
	current := startTime

	for !current.IsAfter(endTime) {
		slots = append(slots, current)

		next, err := current.AddMinutes(stepMinutes)
		if err != nil {
			// Шаг вышел за границу суток, сетка закончена
			break
		}
		current = next
	}

	return slots, nil
}

// resolveSlotParameters определяет параметры сетки запроса: переопределения
// из запроса имеют приоритет над параметрами первой услуги.
// Одна общая сетка на весь запрос, даже если услуги настроены по-разному
func resolveSlotParameters(req *Request, services []*domain.Service) domain.SlotParameters {
	params := domain.SlotParameters{
		StartTime:           domain.DefaultStartTime,
		EndTime:             domain.DefaultEndTime,
		SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
	}
	if len(services) > 0 {
		params = services[0].SlotParameters()
	}

	if req.StartTime != nil && !req.StartTime.IsZero() {
		params.StartTime = *req.StartTime
	}
	if req.EndTime != nil && !req.EndTime.IsZero() {
		params.EndTime = *req.EndTime
	}
	if req.SlotDurationMinutes != nil && *req.SlotDurationMinutes > 0 {
		params.SlotDurationMinutes = *req.SlotDurationMinutes
	}

	return params
}

// buildServiceAvailability собирает сетку доступности одной услуги:
// для каждого слота вместимость с учетом переопределений минус занятые
// места, с отсечкой в ноль
func buildServiceAvailability(
	service *domain.Service,
	slots []types.TimeString,
	bookedCounts map[types.TimeString]int,
	overrides map[domain.OverrideKey]*domain.CapacityOverride,
) domain.ServiceAvailability {
	timeSlots := make([]domain.TimeSlotAvailability, len(slots))

	for i, slotTime := range slots {
		override := overrides[domain.OverrideKey{ServiceID: service.ID, Time: slotTime}]
		capacity := domain.EffectiveCapacity(service, override)
		booked := bookedCounts[slotTime]

		available := capacity - booked
		if available < 0 {
			available = 0
		}

		timeSlots[i] = domain.TimeSlotAvailability{
			Time:            slotTime,
			MaxCapacity:     capacity,
			CurrentBookings: booked,
			AvailableSlots:  available,
			IsAvailable:     available > 0,
		}
	}

	return domain.ServiceAvailability{
		ServiceID:   service.ID,
		ServiceName: service.Name,
		TimeSlots:   timeSlots,
	}
}
