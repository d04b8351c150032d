package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/internal/usecase/get_availability"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

type availabilityProviderMock struct {
	response *get_availability.Response
	err      error
	lastReq  *get_availability.Request
}

func (m *availabilityProviderMock) Execute(_ context.Context, req *get_availability.Request) (*get_availability.Response, error) {
	m.lastReq = req
	return m.response, m.err
}

type loggerStub struct{}

func (l *loggerStub) Info(string, ...interface{})  {}
func (l *loggerStub) Warn(string, ...interface{})  {}
func (l *loggerStub) Error(string, ...interface{}) {}

func availabilityOf(slots ...domain.TimeSlotAvailability) *get_availability.Response {
	return &get_availability.Response{
		Services: []domain.ServiceAvailability{{
			ServiceID:   uuid.New(),
			ServiceName: "Маникюр",
			TimeSlots:   slots,
		}},
	}
}

func TestExecute_CommonSlots(t *testing.T) {
	provider := &availabilityProviderMock{response: availabilityOf(
		slot("09:00", 2),
		slot("09:30", 0),
		slot("10:00", 1),
	)}
	uc := NewUseCase(provider, &loggerStub{})

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		Date:       date,
		ServiceIDs: []uuid.UUID{uuid.New()},
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].Time)
	assert.Equal(t, 2, resp.Slots[0].MinAvailable)
	assert.Equal(t, date, resp.Date)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&availabilityProviderMock{}, &loggerStub{})

	_, err := uc.Execute(context.Background(), &Request{Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceIDs: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ErrorMapping(t *testing.T) {
	req := &Request{Date: time.Now(), ServiceIDs: []uuid.UUID{uuid.New()}}

	uc := NewUseCase(&availabilityProviderMock{err: get_availability.ErrServiceNotFound}, &loggerStub{})
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	uc = NewUseCase(&availabilityProviderMock{err: errors.New("db down")}, &loggerStub{})
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestSuggest_NearestAlternatives(t *testing.T) {
	provider := &availabilityProviderMock{response: availabilityOf(
		slot("09:00", 1),
		slot("09:30", 1),
		slot("10:00", 0),
		slot("10:30", 1),
	)}
	uc := NewUseCase(provider, &loggerStub{})

	resp, err := uc.Suggest(context.Background(), &SuggestRequest{
		Date:          time.Now(),
		ServiceIDs:    []uuid.UUID{uuid.New()},
		PreferredTime: "10:00",
	})
	require.NoError(t, err)

	require.Len(t, resp.Suggestions, 3)
	// 09:30 и 10:30 на равном расстоянии, более раннее первым
	assert.Equal(t, types.TimeString("09:30"), resp.Suggestions[0])
	assert.Equal(t, types.TimeString("10:30"), resp.Suggestions[1])
	assert.Equal(t, types.TimeString("09:00"), resp.Suggestions[2])
	assert.Equal(t, types.TimeString("10:00"), resp.PreferredTime)
}

func TestSuggest_Validation(t *testing.T) {
	uc := NewUseCase(&availabilityProviderMock{}, &loggerStub{})

	_, err := uc.Suggest(context.Background(), &SuggestRequest{
		Date:       time.Now(),
		ServiceIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Suggest(context.Background(), &SuggestRequest{
		Date:          time.Now(),
		ServiceIDs:    []uuid.UUID{uuid.New()},
		PreferredTime: "25:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
