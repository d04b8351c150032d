package get_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	getAvailability "github.com/lunanails/NS-BookingService/internal/usecase/get_availability"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// QueryParams параметры запроса доступности из query string
type QueryParams struct {
	Date         string // date=YYYY-MM-DD, обязателен
	Services     string // services=id1,id2, обязателен
	StartTime    string // start_time=HH:MM, опционален
	EndTime      string // end_time=HH:MM, опционален
	SlotDuration string // slot_duration=30, опционален
	Fresh        string // fresh=true пропускает кэш
}

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Time            string `json:"time"`
	MaxCapacity     int    `json:"maxCapacity"`
	CurrentBookings int    `json:"currentBookings"`
	AvailableSlots  int    `json:"availableSlots"`
	IsAvailable     bool   `json:"isAvailable"`
}

// ServiceAvailabilityResponse HTTP модель доступности одной услуги
type ServiceAvailabilityResponse struct {
	ServiceID   string         `json:"serviceId"`
	ServiceName string         `json:"serviceName"`
	TimeSlots   []SlotResponse `json:"timeSlots"`
}

// AvailabilityResponse HTTP модель ответа
type AvailabilityResponse struct {
	Date        string                        `json:"date"`
	Services    []ServiceAvailabilityResponse `json:"services"`
	LastUpdated string                        `json:"lastUpdated"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func (p *QueryParams) ToUseCaseRequest() (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, p.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %v", err)
	}

	if strings.TrimSpace(p.Services) == "" {
		return nil, fmt.Errorf("services parameter is required")
	}

	rawIDs := strings.Split(p.Services, ",")
	serviceIDs := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid service id %q: %v", raw, err)
		}
		serviceIDs = append(serviceIDs, id)
	}

	req := &getAvailability.Request{
		Date:       date,
		ServiceIDs: serviceIDs,
		SkipCache:  p.Fresh == "true",
	}

	if p.StartTime != "" {
		startTime, err := types.NewTimeStringFromString(p.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid start_time: %v", err)
		}
		req.StartTime = &startTime
	}
	if p.EndTime != "" {
		endTime, err := types.NewTimeStringFromString(p.EndTime)
		if err != nil {
			return nil, fmt.Errorf("invalid end_time: %v", err)
		}
		req.EndTime = &endTime
	}
	if p.SlotDuration != "" {
		var duration int
		if _, err := fmt.Sscanf(p.SlotDuration, "%d", &duration); err != nil {
			return nil, fmt.Errorf("invalid slot_duration: %v", err)
		}
		req.SlotDurationMinutes = &duration
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	services := make([]ServiceAvailabilityResponse, 0, len(resp.Services))
	for _, svc := range resp.Services {
		slots := make([]SlotResponse, 0, len(svc.TimeSlots))
		for _, slot := range svc.TimeSlots {
			slots = append(slots, SlotResponse{
				Time:            slot.Time.String(),
				MaxCapacity:     slot.MaxCapacity,
				CurrentBookings: slot.CurrentBookings,
				AvailableSlots:  slot.AvailableSlots,
				IsAvailable:     slot.IsAvailable,
			})
		}
		services = append(services, ServiceAvailabilityResponse{
			ServiceID:   svc.ServiceID.String(),
			ServiceName: svc.ServiceName,
			TimeSlots:   slots,
		})
	}

	return &AvailabilityResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		Services:    services,
		LastUpdated: resp.LastUpdated.Format(time.RFC3339),
	}
}
