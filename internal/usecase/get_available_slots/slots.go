package get_available_slots

import (
	"sort"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// intersectAvailability находит слоты, доступные в каждой из услуг.
// Сетка берется из первой услуги (расчет доступности строит одну общую
// сетку на запрос). Слот входит в пересечение, только если каждая услуга
// имеет на нем свободные места; услуга без такого слота в своей сетке
// считается недоступной на нем
func intersectAvailability(services []domain.ServiceAvailability) []CommonSlot {
	if len(services) == 0 {
		return []CommonSlot{}
	}

	common := make([]CommonSlot, 0)

	for _, slot := range services[0].TimeSlots {
		minAvailable := slot.AvailableSlots
		available := slot.IsAvailable

		for _, other := range services[1:] {
			otherSlot := other.SlotAt(slot.Time)
			if otherSlot == nil || !otherSlot.IsAvailable {
				available = false
				break
			}
			if otherSlot.AvailableSlots < minAvailable {
				minAvailable = otherSlot.AvailableSlots
			}
		}

		if available {
			common = append(common, CommonSlot{
				Time:         slot.Time,
				MinAvailable: minAvailable,
			})
		}
	}

	return common
}

// suggestNearest выбирает ближайшие к желаемому времени альтернативы.
// Само желаемое время исключается, сортировка по абсолютному расстоянию
// в минутах, при равенстве более раннее время идет первым.
// Результат ограничен domain.MaxSuggestions
func suggestNearest(slots []CommonSlot, preferred types.TimeString) []types.TimeString {
	type candidate struct {
		slot     types.TimeString
		distance int
	}

	candidates := make([]candidate, 0, len(slots))
	for _, slot := range slots {
		if slot.Time == preferred {
			continue
		}
		distance, err := slot.Time.DistanceMinutes(preferred)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{slot: slot.Time, distance: distance})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].slot.IsBefore(candidates[j].slot)
	})

	limit := domain.MaxSuggestions
	if len(candidates) < limit {
		limit = len(candidates)
	}

	suggestions := make([]types.TimeString, 0, limit)
	for _, c := range candidates[:limit] {
		suggestions = append(suggestions, c.slot)
	}

	return suggestions
}
