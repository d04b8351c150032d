package availability_actions

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	checkBooking "github.com/lunanails/NS-BookingService/internal/usecase/check_booking"
	getAvailableSlots "github.com/lunanails/NS-BookingService/internal/usecase/get_available_slots"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

// ActionRequest HTTP request model с диспетчеризацией по action
type ActionRequest struct {
	Action        string        `json:"action"` // check_booking | get_available_slots | suggest_slots
	Date          string        `json:"date"`   // YYYY-MM-DD
	Time          string        `json:"time,omitempty"`
	PreferredTime string        `json:"preferredTime,omitempty"`
	Services      []ItemRequest `json:"services"`
}

// ItemRequest услуга в запросе. Quantity по умолчанию 1
type ItemRequest struct {
	ServiceID string `json:"serviceId"`
	Quantity  int    `json:"quantity,omitempty"`
}

// CheckBookingResponse HTTP модель результата проверки
type CheckBookingResponse struct {
	CanBook   bool     `json:"canBook"`
	Conflicts []string `json:"conflicts,omitempty"`
}

// CommonSlotResponse HTTP модель общего слота
type CommonSlotResponse struct {
	Time         string `json:"time"`
	MinAvailable int    `json:"minAvailable"`
}

// AvailableSlotsResponse HTTP модель списка общих слотов
type AvailableSlotsResponse struct {
	Date  string               `json:"date"`
	Slots []CommonSlotResponse `json:"slots"`
}

// SuggestionsResponse HTTP модель альтернативных слотов
type SuggestionsResponse struct {
	Date          string   `json:"date"`
	PreferredTime string   `json:"preferredTime"`
	Suggestions   []string `json:"suggestions"`
}

func (r *ActionRequest) parseDate() (time.Time, error) {
	return time.Parse(domain.DateFormat, r.Date)
}

func (r *ActionRequest) parseServiceIDs() ([]uuid.UUID, error) {
	if len(r.Services) == 0 {
		return nil, fmt.Errorf("services are required")
	}

	ids := make([]uuid.UUID, 0, len(r.Services))
	for _, item := range r.Services {
		id, err := uuid.Parse(item.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("invalid service id %q: %v", item.ServiceID, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ToCheckRequest конвертирует HTTP запрос в модель проверки вместимости
func (r *ActionRequest) ToCheckRequest() (*checkBooking.Request, error) {
	date, err := r.parseDate()
	if err != nil {
		return nil, err
	}

	slotTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	items := make([]checkBooking.Item, 0, len(r.Services))
	for _, item := range r.Services {
		id, err := uuid.Parse(item.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("invalid service id %q: %v", item.ServiceID, err)
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		items = append(items, checkBooking.Item{ServiceID: id, Quantity: quantity})
	}

	return &checkBooking.Request{
		Date:  date,
		Time:  slotTime,
		Items: items,
	}, nil
}

// ToSlotsRequest конвертирует HTTP запрос в модель поиска общих слотов
func (r *ActionRequest) ToSlotsRequest() (*getAvailableSlots.Request, error) {
	date, err := r.parseDate()
	if err != nil {
		return nil, err
	}

	ids, err := r.parseServiceIDs()
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Date:       date,
		ServiceIDs: ids,
	}, nil
}

// ToSuggestRequest конвертирует HTTP запрос в модель подбора альтернатив
func (r *ActionRequest) ToSuggestRequest() (*getAvailableSlots.SuggestRequest, error) {
	date, err := r.parseDate()
	if err != nil {
		return nil, err
	}

	ids, err := r.parseServiceIDs()
	if err != nil {
		return nil, err
	}

	preferred, err := types.NewTimeStringFromString(r.PreferredTime)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.SuggestRequest{
		Date:          date,
		ServiceIDs:    ids,
		PreferredTime: preferred,
	}, nil
}

// FromCheckResponse конвертирует результат проверки в HTTP модель
func FromCheckResponse(resp *checkBooking.Response) *CheckBookingResponse {
	return &CheckBookingResponse{
		CanBook:   resp.CanBook,
		Conflicts: resp.Conflicts,
	}
}

// FromSlotsResponse конвертирует общие слоты в HTTP модель
func FromSlotsResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]CommonSlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, CommonSlotResponse{
			Time:         slot.Time.String(),
			MinAvailable: slot.MinAvailable,
		})
	}
	return &AvailableSlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}

// FromSuggestResponse конвертирует альтернативы в HTTP модель
func FromSuggestResponse(resp *getAvailableSlots.SuggestResponse) *SuggestionsResponse {
	suggestions := make([]string, 0, len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		suggestions = append(suggestions, s.String())
	}
	return &SuggestionsResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		PreferredTime: resp.PreferredTime.String(),
		Suggestions:   suggestions,
	}
}
