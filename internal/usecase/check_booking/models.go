package check_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/pkg/types"
)

// Item одна услуга проверяемого бронирования.
// Quantity занимает столько же мест слота
type Item struct {
	ServiceID uuid.UUID
	Quantity  int
}

// Request модель запроса проверки, поместится ли бронирование в слот
type Request struct {
	Date  time.Time
	Time  types.TimeString
	Items []Item
}

// Response результат проверки. При CanBook = false Conflicts содержит
// отображаемые имена услуг, которым не хватило мест
type Response struct {
	CanBook   bool
	Conflicts []string
}
