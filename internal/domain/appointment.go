package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ValidStatuses все допустимые статусы записи
var ValidStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// IsValid reports whether the status is one of the known values.
func (s AppointmentStatus) IsValid() bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Appointment represents a customer visit at a specific date and slot.
// Date is a calendar day without timezone; StartTime is a naive wall-clock
// label matching the slot grid.
type Appointment struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Date       time.Time
	StartTime  types.TimeString
	Status     AppointmentStatus
	Notes      *string

	// CalendarEventID идентификатор события во внешнем календаре
	// (заполняется после успешной синхронизации, best-effort)
	CalendarEventID *string

	Services []AppointmentService

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsTowardCapacity reports whether the appointment occupies capacity.
// Cancelled appointments are soft-excluded, never deleted.
func (a *Appointment) CountsTowardCapacity() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled reports whether the appointment can still be cancelled.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// AppointmentService is the join row linking an appointment to one booked
// service. Created atomically with the appointment, never mutated.
// Quantity consumes that many capacity units of the service's slot.
type AppointmentService struct {
	AppointmentID  uuid.UUID
	ServiceID      uuid.UUID
	Quantity       int
	PriceAtBooking float64

	// Denormalized for admin listings
	ServiceName string
}

// AppointmentsFilter фильтр для админских выборок записей
type AppointmentsFilter struct {
	CustomerID *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
	Status     *AppointmentStatus
}
