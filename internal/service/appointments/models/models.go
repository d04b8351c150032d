package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// Request модели

// ListAppointmentsRequest фильтр админской выборки записей
// Все поля опциональны
type ListAppointmentsRequest struct {
	CustomerID *uuid.UUID `json:"customerId,omitempty"`
	FromDate   *time.Time `json:"fromDate,omitempty"`
	ToDate     *time.Time `json:"toDate,omitempty"`
	Status     *string    `json:"status,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	AppointmentID uuid.UUID `json:"appointmentId"`
	Status        string    `json:"status"`
}

// Response модели

// AppointmentServiceResponse строка услуги записи
type AppointmentServiceResponse struct {
	ServiceID      uuid.UUID `json:"serviceId"`
	ServiceName    string    `json:"serviceName"`
	Quantity       int       `json:"quantity"`
	PriceAtBooking float64   `json:"priceAtBooking"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              uuid.UUID                    `json:"id"`
	CustomerID      uuid.UUID                    `json:"customerId"`
	Date            string                       `json:"date"`
	StartTime       types.TimeString             `json:"startTime"`
	Status          string                       `json:"status"`
	Notes           *string                      `json:"notes,omitempty"`
	CalendarEventID *string                      `json:"calendarEventId,omitempty"`
	Services        []AppointmentServiceResponse `json:"services"`
	TotalPrice      float64                      `json:"totalPrice"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// ToDomainFilter конвертирует запрос выборки в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() domain.AppointmentsFilter {
	filter := domain.AppointmentsFilter{
		CustomerID: r.CustomerID,
		FromDate:   r.FromDate,
		ToDate:     r.ToDate,
	}
	if r.Status != nil {
		status := domain.AppointmentStatus(*r.Status)
		filter.Status = &status
	}
	return filter
}

// FromDomainAppointment конвертирует domain модель записи в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	services := make([]AppointmentServiceResponse, 0, len(a.Services))
	total := 0.0
	for _, item := range a.Services {
		services = append(services, AppointmentServiceResponse{
			ServiceID:      item.ServiceID,
			ServiceName:    item.ServiceName,
			Quantity:       item.Quantity,
			PriceAtBooking: item.PriceAtBooking,
		})
		total += item.PriceAtBooking * float64(item.Quantity)
	}

	return &AppointmentResponse{
		ID:              a.ID,
		CustomerID:      a.CustomerID,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CalendarEventID: a.CalendarEventID,
		Services:        services,
		TotalPrice:      total,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointments конвертирует список записей в DTO
func FromDomainAppointments(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: result}
}
