package capacity_admin

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/internal/service/capacity/models"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// ActionRequest HTTP request model админских действий над вместимостью
type ActionRequest struct {
	Action    string `json:"action"` // update_capacity | set_override | deactivate_override | add_to_waitlist
	ServiceID string `json:"serviceId,omitempty"`

	// update_capacity
	MaxBookingsPerSlot  int     `json:"maxBookingsPerSlot,omitempty"`
	StartTime           *string `json:"startTime,omitempty"`
	EndTime             *string `json:"endTime,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	BufferTimeMinutes   *int    `json:"bufferTimeMinutes,omitempty"`

	// set_override
	Date        string  `json:"date,omitempty"`
	Time        string  `json:"time,omitempty"`
	MaxBookings *int    `json:"maxBookings,omitempty"`
	Reason      *string `json:"reason,omitempty"`

	// deactivate_override
	OverrideID string `json:"overrideId,omitempty"`

	// add_to_waitlist
	FirstName     string  `json:"firstName,omitempty"`
	LastName      string  `json:"lastName,omitempty"`
	Email         string  `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	PreferredDate string  `json:"preferredDate,omitempty"`
	PreferredTime string  `json:"preferredTime,omitempty"`
}

// ToUpdateCapacityRequest конвертирует запрос в модель сервиса
func (r *ActionRequest) ToUpdateCapacityRequest() (*models.UpdateServiceCapacityRequest, error) {
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service id: %v", err)
	}

	req := &models.UpdateServiceCapacityRequest{
		ServiceID:           serviceID,
		MaxBookingsPerSlot:  r.MaxBookingsPerSlot,
		SlotDurationMinutes: r.SlotDurationMinutes,
		BufferTimeMinutes:   r.BufferTimeMinutes,
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid startTime: %v", err)
		}
		req.StartTime = &startTime
	}
	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("invalid endTime: %v", err)
		}
		req.EndTime = &endTime
	}

	return req, nil
}

// ToSetOverrideRequest конвертирует запрос в модель сервиса
func (r *ActionRequest) ToSetOverrideRequest() (*models.SetOverrideRequest, error) {
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service id: %v", err)
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %v", err)
	}

	slotTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid time: %v", err)
	}

	if r.MaxBookings == nil {
		return nil, fmt.Errorf("maxBookings is required")
	}

	return &models.SetOverrideRequest{
		ServiceID:   serviceID,
		Date:        date,
		Time:        slotTime,
		MaxBookings: *r.MaxBookings,
		Reason:      r.Reason,
	}, nil
}

// ToAddToWaitlistRequest конвертирует запрос в модель сервиса
func (r *ActionRequest) ToAddToWaitlistRequest() (*models.AddToWaitlistRequest, error) {
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service id: %v", err)
	}

	date, err := time.Parse(domain.DateFormat, r.PreferredDate)
	if err != nil {
		return nil, fmt.Errorf("invalid preferredDate: %v", err)
	}

	preferredTime, err := types.NewTimeStringFromString(r.PreferredTime)
	if err != nil {
		return nil, fmt.Errorf("invalid preferredTime: %v", err)
	}

	return &models.AddToWaitlistRequest{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Phone:         r.Phone,
		ServiceID:     serviceID,
		PreferredDate: date,
		PreferredTime: preferredTime,
	}, nil
}

// CapacityOverviewResponse HTTP модель сводки по услуге: настройки,
// переопределения и лист ожидания одним ответом
type CapacityOverviewResponse struct {
	Config    *models.ServiceCapacityResponse `json:"config"`
	Overrides []models.OverrideResponse       `json:"overrides"`
	Waitlist  []models.WaitlistEntryResponse  `json:"waitlist"`
}
