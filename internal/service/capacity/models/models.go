package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// Request модели

// UpdateServiceCapacityRequest запрос на обновление настроек вместимости услуги
// Все поля кроме maxBookingsPerSlot опциональны - обновляются только переданные
type UpdateServiceCapacityRequest struct {
	ServiceID           uuid.UUID         `json:"serviceId"`
	MaxBookingsPerSlot  int               `json:"maxBookingsPerSlot"`
	StartTime           *types.TimeString `json:"startTime,omitempty"`
	EndTime             *types.TimeString `json:"endTime,omitempty"`
	SlotDurationMinutes *int              `json:"slotDurationMinutes,omitempty"`
	BufferTimeMinutes   *int              `json:"bufferTimeMinutes,omitempty"`
}

// SetOverrideRequest запрос на установку переопределения слота
type SetOverrideRequest struct {
	ServiceID   uuid.UUID        `json:"serviceId"`
	Date        time.Time        `json:"date"`
	Time        types.TimeString `json:"time"`
	MaxBookings int              `json:"maxBookings"`
	Reason      *string          `json:"reason,omitempty"`
}

// AddToWaitlistRequest запрос на добавление клиента в лист ожидания
type AddToWaitlistRequest struct {
	FirstName     string           `json:"firstName"`
	LastName      string           `json:"lastName"`
	Email         string           `json:"email"`
	Phone         *string          `json:"phone,omitempty"`
	ServiceID     uuid.UUID        `json:"serviceId"`
	PreferredDate time.Time        `json:"preferredDate"`
	PreferredTime types.TimeString `json:"preferredTime"`
}

// Response модели

// ServiceCapacityResponse ответ с настройками вместимости услуги
type ServiceCapacityResponse struct {
	ServiceID           uuid.UUID        `json:"serviceId"`
	ServiceName         string           `json:"serviceName"`
	MaxBookingsPerSlot  int              `json:"maxBookingsPerSlot"`
	StartTime           types.TimeString `json:"startTime"`
	EndTime             types.TimeString `json:"endTime"`
	SlotDurationMinutes int              `json:"slotDurationMinutes"`
	BufferTimeMinutes   int              `json:"bufferTimeMinutes"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// OverrideResponse ответ с данными переопределения слота
type OverrideResponse struct {
	ID          uuid.UUID        `json:"id"`
	ServiceID   uuid.UUID        `json:"serviceId"`
	Date        string           `json:"date"`
	Time        types.TimeString `json:"time"`
	MaxBookings int              `json:"maxBookings"`
	Reason      *string          `json:"reason,omitempty"`
	IsActive    bool             `json:"isActive"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// OverrideListResponse ответ со списком переопределений
type OverrideListResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
}

// WaitlistEntryResponse ответ с записью листа ожидания
type WaitlistEntryResponse struct {
	ID            uuid.UUID        `json:"id"`
	CustomerID    uuid.UUID        `json:"customerId"`
	ServiceID     uuid.UUID        `json:"serviceId"`
	PreferredDate string           `json:"preferredDate"`
	PreferredTime types.TimeString `json:"preferredTime"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// WaitlistResponse ответ со списком записей ожидания
type WaitlistResponse struct {
	Entries []WaitlistEntryResponse `json:"entries"`
}

// Методы конвертации

// FromDomainService конвертирует услугу в DTO настроек вместимости
func FromDomainService(s *domain.Service) *ServiceCapacityResponse {
	if s == nil {
		return nil
	}

	params := s.SlotParameters()

	return &ServiceCapacityResponse{
		ServiceID:           s.ID,
		ServiceName:         s.Name,
		MaxBookingsPerSlot:  s.BaseCapacity(),
		StartTime:           params.StartTime,
		EndTime:             params.EndTime,
		SlotDurationMinutes: params.SlotDurationMinutes,
		BufferTimeMinutes:   s.BufferTimeMinutes,
		UpdatedAt:           s.UpdatedAt,
	}
}

// FromDomainOverride конвертирует domain модель переопределения в DTO
func FromDomainOverride(o *domain.CapacityOverride) *OverrideResponse {
	if o == nil {
		return nil
	}

	return &OverrideResponse{
		ID:          o.ID,
		ServiceID:   o.ServiceID,
		Date:        o.Date.Format(domain.DateFormat),
		Time:        o.Time,
		MaxBookings: o.MaxBookings,
		Reason:      o.Reason,
		IsActive:    o.IsActive,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// FromDomainOverrides конвертирует список переопределений в DTO
func FromDomainOverrides(overrides []*domain.CapacityOverride) *OverrideListResponse {
	result := make([]OverrideResponse, 0, len(overrides))
	for _, o := range overrides {
		result = append(result, *FromDomainOverride(o))
	}
	return &OverrideListResponse{Overrides: result}
}

// FromDomainWaitlistEntry конвертирует запись ожидания в DTO
func FromDomainWaitlistEntry(e *domain.WaitlistEntry) *WaitlistEntryResponse {
	if e == nil {
		return nil
	}

	return &WaitlistEntryResponse{
		ID:            e.ID,
		CustomerID:    e.CustomerID,
		ServiceID:     e.ServiceID,
		PreferredDate: e.PreferredDate.Format(domain.DateFormat),
		PreferredTime: e.PreferredTime,
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
	}
}

// FromDomainWaitlist конвертирует список записей ожидания в DTO
func FromDomainWaitlist(entries []*domain.WaitlistEntry) *WaitlistResponse {
	result := make([]WaitlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, *FromDomainWaitlistEntry(e))
	}
	return &WaitlistResponse{Entries: result}
}
