package capacity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunanails/NS-BookingService/internal/domain"
	capacityRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/capacity"
	catalogRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/catalog"
	customerRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/customer"
	"github.com/lunanails/NS-BookingService/internal/service/capacity/models"
	"github.com/lunanails/NS-BookingService/pkg/ptr"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

type catalogRepoMock struct {
	service    *domain.Service
	getErr     error
	updated    *domain.Service
	lastUpdate catalogRepo.CapacityUpdate
}

func (m *catalogRepoMock) GetByID(_ context.Context, _ uuid.UUID) (*domain.Service, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.service, nil
}

func (m *catalogRepoMock) UpdateCapacity(_ context.Context, _ uuid.UUID, update catalogRepo.CapacityUpdate) (*domain.Service, error) {
	m.lastUpdate = update
	if m.updated != nil {
		return m.updated, nil
	}
	return m.service, nil
}

type capacityRepoMock struct {
	upserted      *domain.CapacityOverride
	listed        []*domain.CapacityOverride
	deactivateErr error
}

func (m *capacityRepoMock) Upsert(_ context.Context, override *domain.CapacityOverride) (*domain.CapacityOverride, error) {
	saved := *override
	saved.ID = uuid.New()
	saved.IsActive = true
	m.upserted = &saved
	return &saved, nil
}

func (m *capacityRepoMock) ListByService(_ context.Context, _ uuid.UUID, _ time.Time) ([]*domain.CapacityOverride, error) {
	return m.listed, nil
}

func (m *capacityRepoMock) Deactivate(_ context.Context, _ uuid.UUID) error {
	return m.deactivateErr
}

type customerRepoMock struct {
	existing    *domain.Customer
	createCalls int
}

func (m *customerRepoMock) GetByEmail(_ context.Context, _ string) (*domain.Customer, error) {
	if m.existing != nil {
		return m.existing, nil
	}
	return nil, customerRepo.ErrCustomerNotFound
}

func (m *customerRepoMock) Create(_ context.Context, cust *domain.Customer) (*domain.Customer, error) {
	m.createCalls++
	created := *cust
	created.ID = uuid.New()
	return &created, nil
}

type waitlistRepoMock struct {
	entries []*domain.WaitlistEntry
}

func (m *waitlistRepoMock) Add(_ context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	saved := *entry
	saved.ID = uuid.New()
	saved.Status = domain.WaitlistActive
	saved.CreatedAt = time.Now()
	m.entries = append(m.entries, &saved)
	return &saved, nil
}

func (m *waitlistRepoMock) ListActive(_ context.Context, _ uuid.UUID, _ *time.Time) ([]*domain.WaitlistEntry, error) {
	return m.entries, nil
}

type loggerStub struct{}

func (l *loggerStub) Info(string, ...interface{})  {}
func (l *loggerStub) Warn(string, ...interface{})  {}
func (l *loggerStub) Error(string, ...interface{}) {}

func newTestService(catalog *catalogRepoMock, capacity *capacityRepoMock, customer *customerRepoMock, waitlist *waitlistRepoMock) *Service {
	return NewService(catalog, capacity, customer, waitlist, &loggerStub{})
}

func TestGetServiceConfig(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{service: &domain.Service{
		ID:                 serviceID,
		Name:               "Маникюр",
		MaxBookingsPerSlot: 2,
	}}
	svc := newTestService(catalog, &capacityRepoMock{}, &customerRepoMock{}, &waitlistRepoMock{})

	resp, err := svc.GetServiceConfig(context.Background(), serviceID)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.MaxBookingsPerSlot)
	assert.Equal(t, domain.DefaultStartTime, resp.StartTime)
	assert.Equal(t, domain.DefaultEndTime, resp.EndTime)
}

func TestGetServiceConfig_NotFound(t *testing.T) {
	catalog := &catalogRepoMock{getErr: catalogRepo.ErrServiceNotFound}
	svc := newTestService(catalog, &capacityRepoMock{}, &customerRepoMock{}, &waitlistRepoMock{})

	_, err := svc.GetServiceConfig(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUpdateServiceCapacity(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{service: &domain.Service{ID: serviceID, Name: "Маникюр"}}
	svc := newTestService(catalog, &capacityRepoMock{}, &customerRepoMock{}, &waitlistRepoMock{})

	_, err := svc.UpdateServiceCapacity(context.Background(), &models.UpdateServiceCapacityRequest{
		ServiceID:           serviceID,
		MaxBookingsPerSlot:  5,
		StartTime:           ptr.Ptr(types.TimeString("10:00")),
		EndTime:             ptr.Ptr(types.TimeString("19:00")),
		SlotDurationMinutes: ptr.Ptr(45),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, catalog.lastUpdate.MaxBookingsPerSlot)
	assert.Equal(t, types.TimeString("10:00"), *catalog.lastUpdate.StartTime)
	assert.Equal(t, 45, *catalog.lastUpdate.SlotDurationMinutes)
}

func TestUpdateServiceCapacity_Validation(t *testing.T) {
	svc := newTestService(&catalogRepoMock{}, &capacityRepoMock{}, &customerRepoMock{}, &waitlistRepoMock{})

	tests := []struct {
		name string
		req  *models.UpdateServiceCapacityRequest
	}{
		{
			name: "zero max bookings",
			req:  &models.UpdateServiceCapacityRequest{MaxBookingsPerSlot: 0},
		},
		{
			name: "max bookings above limit",
			req:  &models.UpdateServiceCapacityRequest{MaxBookingsPerSlot: domain.MaxBookingsPerSlot + 1},
		},
		{
			name: "start after end",
			req: &models.UpdateServiceCapacityRequest{
				MaxBookingsPerSlot: 1,
				StartTime:          ptr.Ptr(types.TimeString("19:00")),
				EndTime:            ptr.Ptr(types.TimeString("09:00")),
			},
		},
		{
			name: "slot duration below minimum",
			req: &models.UpdateServiceCapacityRequest{
				MaxBookingsPerSlot:  1,
				SlotDurationMinutes: ptr.Ptr(domain.MinSlotDurationMinutes - 1),
			},
		},
		{
			name: "negative buffer",
			req: &models.UpdateServiceCapacityRequest{
				MaxBookingsPerSlot: 1,
				BufferTimeMinutes:  ptr.Ptr(-5),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateServiceCapacity(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSetOverride(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{service: &domain.Service{ID: serviceID, Name: "Маникюр"}}
	capacity := &capacityRepoMock{}
	svc := newTestService(catalog, capacity, &customerRepoMock{}, &waitlistRepoMock{})

	resp, err := svc.SetOverride(context.Background(), &models.SetOverrideRequest{
		ServiceID:   serviceID,
		Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Time:        "10:00",
		MaxBookings: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.MaxBookings)
	assert.True(t, resp.IsActive)
	assert.Equal(t, "2026-09-01", resp.Date)
	require.NotNil(t, capacity.upserted)
}

func TestSetOverride_ZeroClosesSlot(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{service: &domain.Service{ID: serviceID}}
	svc := newTestService(catalog, &capacityRepoMock{}, &customerRepoMock{}, &waitlistRepoMock{})

	resp, err := svc.SetOverride(context.Background(), &models.SetOverrideRequest{
		ServiceID:   serviceID,
		Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Time:        "10:00",
		MaxBookings: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.MaxBookings)
}

func TestSetOverride_Validation(t *testing.T) {
	svc := newTestService(&catalogRepoMock{}, &capacityRepoMock{}, &customerRepoMock{}, &waitlistRepoMock{})

	_, err := svc.SetOverride(context.Background(), &models.SetOverrideRequest{
		ServiceID:   uuid.New(),
		Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Time:        "10:00",
		MaxBookings: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetOverride(context.Background(), &models.SetOverrideRequest{
		ServiceID:   uuid.New(),
		Time:        "10:00",
		MaxBookings: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetOverride_ServiceNotFound(t *testing.T) {
	catalog := &catalogRepoMock{getErr: catalogRepo.ErrServiceNotFound}
	svc := newTestService(catalog, &capacityRepoMock{}, &customerRepoMock{}, &waitlistRepoMock{})

	_, err := svc.SetOverride(context.Background(), &models.SetOverrideRequest{
		ServiceID:   uuid.New(),
		Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Time:        "10:00",
		MaxBookings: 2,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDeactivateOverride_NotFound(t *testing.T) {
	capacity := &capacityRepoMock{deactivateErr: capacityRepo.ErrOverrideNotFound}
	svc := newTestService(&catalogRepoMock{}, capacity, &customerRepoMock{}, &waitlistRepoMock{})

	err := svc.DeactivateOverride(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOverrideNotFound)
}

func TestAddToWaitlist_CreatesCustomer(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{service: &domain.Service{ID: serviceID}}
	customer := &customerRepoMock{}
	svc := newTestService(catalog, &capacityRepoMock{}, customer, &waitlistRepoMock{})

	resp, err := svc.AddToWaitlist(context.Background(), &models.AddToWaitlistRequest{
		FirstName:     "Анна",
		LastName:      "Иванова",
		Email:         "anna@example.com",
		ServiceID:     serviceID,
		PreferredDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		PreferredTime: "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, customer.createCalls)
	assert.Equal(t, string(domain.WaitlistActive), resp.Status)
}

func TestAddToWaitlist_ReusesExistingCustomer(t *testing.T) {
	serviceID := uuid.New()
	existingID := uuid.New()
	catalog := &catalogRepoMock{service: &domain.Service{ID: serviceID}}
	customer := &customerRepoMock{existing: &domain.Customer{ID: existingID, Email: "anna@example.com"}}
	svc := newTestService(catalog, &capacityRepoMock{}, customer, &waitlistRepoMock{})

	resp, err := svc.AddToWaitlist(context.Background(), &models.AddToWaitlistRequest{
		FirstName:     "Анна",
		LastName:      "Иванова",
		Email:         "anna@example.com",
		ServiceID:     serviceID,
		PreferredDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		PreferredTime: "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, customer.createCalls)
	assert.Equal(t, existingID, resp.CustomerID)
}
