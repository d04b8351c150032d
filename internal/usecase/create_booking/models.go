package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// CustomerInfo данные клиента из формы бронирования.
// Клиент находится или создается по email
type CustomerInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
}

// Item одна услуга бронирования
type Item struct {
	ServiceID uuid.UUID
	Quantity  int
}

// Request модель запроса на создание записи
type Request struct {
	Customer  CustomerInfo
	Date      time.Time
	StartTime types.TimeString
	Items     []Item
	Notes     *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Date       time.Time
	StartTime  types.TimeString
	Status     string
	Notes      *string
	Services   []domain.AppointmentService
	TotalPrice float64
	CreatedAt  time.Time
}
