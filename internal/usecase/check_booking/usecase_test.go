package check_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

type catalogRepoMock struct {
	services []*domain.Service
	err      error
}

func (m *catalogRepoMock) GetActiveByIDs(_ context.Context, _ []uuid.UUID) ([]*domain.Service, error) {
	return m.services, m.err
}

type appointmentRepoMock struct {
	counts map[uuid.UUID]int
	err    error
}

func (m *appointmentRepoMock) CountActiveAt(_ context.Context, serviceID uuid.UUID, _ time.Time, _ types.TimeString) (int, error) {
	return m.counts[serviceID], m.err
}

type capacityRepoMock struct {
	overrides map[uuid.UUID]*domain.CapacityOverride
	err       error
}

func (m *capacityRepoMock) GetActiveAt(_ context.Context, serviceID uuid.UUID, _ time.Time, _ types.TimeString) (*domain.CapacityOverride, error) {
	return m.overrides[serviceID], m.err
}

type loggerStub struct{}

func (l *loggerStub) Info(string, ...interface{})  {}
func (l *loggerStub) Warn(string, ...interface{})  {}
func (l *loggerStub) Error(string, ...interface{}) {}

func TestExecute_CanBook(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{services: []*domain.Service{{
		ID:                 serviceID,
		Name:               "Маникюр",
		MaxBookingsPerSlot: 3,
	}}}
	appointments := &appointmentRepoMock{counts: map[uuid.UUID]int{serviceID: 1}}

	uc := NewUseCase(catalog, appointments, &capacityRepoMock{}, &loggerStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:  time.Now().AddDate(0, 0, 1),
		Time:  "10:00",
		Items: []Item{{ServiceID: serviceID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.True(t, resp.CanBook)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_QuantityExceedsCapacity(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{services: []*domain.Service{{
		ID:                 serviceID,
		Name:               "Маникюр",
		MaxBookingsPerSlot: 3,
	}}}
	appointments := &appointmentRepoMock{counts: map[uuid.UUID]int{serviceID: 2}}

	uc := NewUseCase(catalog, appointments, &capacityRepoMock{}, &loggerStub{})

	// занято 2 из 3, запрошено 2 места
	resp, err := uc.Execute(context.Background(), &Request{
		Date:  time.Now().AddDate(0, 0, 1),
		Time:  "10:00",
		Items: []Item{{ServiceID: serviceID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.False(t, resp.CanBook)
	assert.Equal(t, []string{"Маникюр"}, resp.Conflicts)
}

func TestExecute_OverrideChangesCapacity(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{services: []*domain.Service{{
		ID:                 serviceID,
		Name:               "Маникюр",
		MaxBookingsPerSlot: 1,
	}}}
	appointments := &appointmentRepoMock{counts: map[uuid.UUID]int{serviceID: 3}}
	capacity := &capacityRepoMock{overrides: map[uuid.UUID]*domain.CapacityOverride{
		serviceID: {MaxBookings: 5, IsActive: true},
	}}

	uc := NewUseCase(catalog, appointments, capacity, &loggerStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:  time.Now().AddDate(0, 0, 1),
		Time:  "10:00",
		Items: []Item{{ServiceID: serviceID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.True(t, resp.CanBook)
}

func TestExecute_ConflictsListAllBlockedServices(t *testing.T) {
	freeID := uuid.New()
	fullID := uuid.New()
	catalog := &catalogRepoMock{services: []*domain.Service{
		{ID: freeID, Name: "Маникюр", MaxBookingsPerSlot: 2},
		{ID: fullID, Name: "Педикюр", MaxBookingsPerSlot: 1},
	}}
	appointments := &appointmentRepoMock{counts: map[uuid.UUID]int{fullID: 1}}

	uc := NewUseCase(catalog, appointments, &capacityRepoMock{}, &loggerStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Now().AddDate(0, 0, 1),
		Time: "10:00",
		Items: []Item{
			{ServiceID: freeID, Quantity: 1},
			{ServiceID: fullID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.False(t, resp.CanBook)
	assert.Equal(t, []string{"Педикюр"}, resp.Conflicts)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := &catalogRepoMock{services: []*domain.Service{}}
	uc := NewUseCase(catalog, &appointmentRepoMock{}, &capacityRepoMock{}, &loggerStub{})

	_, err := uc.Execute(context.Background(), &Request{
		Date:  time.Now().AddDate(0, 0, 1),
		Time:  "10:00",
		Items: []Item{{ServiceID: uuid.New(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&catalogRepoMock{}, &appointmentRepoMock{}, &capacityRepoMock{}, &loggerStub{})

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "zero date",
			req:  &Request{Time: "10:00", Items: []Item{{ServiceID: uuid.New(), Quantity: 1}}},
		},
		{
			name: "bad time",
			req:  &Request{Date: time.Now(), Time: "10:99", Items: []Item{{ServiceID: uuid.New(), Quantity: 1}}},
		},
		{
			name: "no items",
			req:  &Request{Date: time.Now(), Time: "10:00"},
		},
		{
			name: "zero quantity",
			req:  &Request{Date: time.Now(), Time: "10:00", Items: []Item{{ServiceID: uuid.New()}}},
		},
		{
			name: "duplicate service",
			req: &Request{Date: time.Now(), Time: "10:00", Items: []Item{
				{ServiceID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Quantity: 1},
				{ServiceID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Quantity: 1},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
