package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/pkg/types"
)

// Request модель запроса на поиск слотов, доступных сразу для всех услуг
type Request struct {
	Date       time.Time   // Дата поиска (без времени)
	ServiceIDs []uuid.UUID // Услуги, которые должны быть доступны одновременно
}

// SuggestRequest модель запроса предложений альтернативных слотов
// вокруг желаемого, но занятого времени
type SuggestRequest struct {
	Date          time.Time
	ServiceIDs    []uuid.UUID
	PreferredTime types.TimeString
}

// Response модель ответа со слотами, общими для всех услуг
type Response struct {
	Date  time.Time
	Slots []CommonSlot
}

// CommonSlot слот, в котором каждая из запрошенных услуг имеет свободные
// места. MinAvailable - минимум свободных мест среди услуг, то есть
// сколько одновременных бронирований набора еще поместится
type CommonSlot struct {
	Time         types.TimeString
	MinAvailable int
}

// SuggestResponse модель ответа с альтернативными слотами, отсортированными
// по близости к желаемому времени
type SuggestResponse struct {
	Date          time.Time
	PreferredTime types.TimeString
	Suggestions   []types.TimeString
}
