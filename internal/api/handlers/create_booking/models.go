package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	createBooking "github.com/lunanails/NS-BookingService/internal/usecase/create_booking"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Customer CustomerRequest `json:"customer" validate:"required"`
	Date     string          `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string          `json:"time" validate:"required"`
	Services []ItemRequest   `json:"services" validate:"required,min=1,dive"`
	Notes    *string         `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// CustomerRequest данные клиента из формы бронирования
type CustomerRequest struct {
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// ItemRequest одна услуга бронирования. Quantity по умолчанию 1
type ItemRequest struct {
	ServiceID string `json:"serviceId" validate:"required,uuid4"`
	Quantity  int    `json:"quantity,omitempty" validate:"omitempty,min=1,max=100"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         string                  `json:"id"`
	CustomerID string                  `json:"customerId"`
	Date       string                  `json:"date"`
	Time       string                  `json:"time"`
	Status     string                  `json:"status"`
	Notes      *string                 `json:"notes,omitempty"`
	Services   []BookedServiceResponse `json:"services"`
	TotalPrice float64                 `json:"totalPrice"`
	CreatedAt  string                  `json:"createdAt"`
}

// BookedServiceResponse строка услуги в ответе
type BookedServiceResponse struct {
	ServiceID      string  `json:"serviceId"`
	ServiceName    string  `json:"serviceName"`
	Quantity       int     `json:"quantity"`
	PriceAtBooking float64 `json:"priceAtBooking"`
}

// ConflictResponse HTTP модель ответа 409 с альтернативами
type ConflictResponse struct {
	Message     string   `json:"message"`
	Conflicts   []string `json:"conflicts"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	items := make([]createBooking.Item, 0, len(r.Services))
	for _, item := range r.Services {
		id, err := uuid.Parse(item.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("invalid service id %q: %v", item.ServiceID, err)
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		items = append(items, createBooking.Item{ServiceID: id, Quantity: quantity})
	}

	return &createBooking.Request{
		Customer: createBooking.CustomerInfo{
			FirstName: r.Customer.FirstName,
			LastName:  r.Customer.LastName,
			Email:     r.Customer.Email,
			Phone:     r.Customer.Phone,
		},
		Date:      date,
		StartTime: startTime,
		Items:     items,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	services := make([]BookedServiceResponse, 0, len(resp.Services))
	for _, item := range resp.Services {
		services = append(services, BookedServiceResponse{
			ServiceID:      item.ServiceID.String(),
			ServiceName:    item.ServiceName,
			Quantity:       item.Quantity,
			PriceAtBooking: item.PriceAtBooking,
		})
	}

	return &BookingResponse{
		ID:         resp.ID.String(),
		CustomerID: resp.CustomerID.String(),
		Date:       resp.Date.Format(domain.DateFormat),
		Time:       resp.StartTime.String(),
		Status:     resp.Status,
		Notes:      resp.Notes,
		Services:   services,
		TotalPrice: resp.TotalPrice,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}

// FromConflictError конвертирует конфликт вместимости в HTTP модель 409
func FromConflictError(conflict *createBooking.CapacityConflictError, message string) *ConflictResponse {
	suggestions := make([]string, 0, len(conflict.Suggestions))
	for _, s := range conflict.Suggestions {
		suggestions = append(suggestions, s.String())
	}

	return &ConflictResponse{
		Message:     message,
		Conflicts:   conflict.ServiceNames,
		Suggestions: suggestions,
	}
}
