package get_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// Request модель запроса расчета доступности на день
type Request struct {
	Date       time.Time   // Дата расчета (без времени)
	ServiceIDs []uuid.UUID // Услуги, для которых считается доступность

	// Необязательные переопределения сетки слотов. Если не заданы,
	// используются параметры первой услуги, затем значения по умолчанию
	StartTime           *types.TimeString
	EndTime             *types.TimeString
	SlotDurationMinutes *int

	// SkipCache заставляет пересчитать доступность из БД, минуя кэш
	SkipCache bool
}

// Response модель ответа с доступностью каждой услуги по слотам
type Response struct {
	Date        time.Time
	Services    []domain.ServiceAvailability
	LastUpdated time.Time
}
