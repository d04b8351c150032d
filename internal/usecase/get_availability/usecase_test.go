package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunanails/NS-BookingService/internal/domain"
	availcache "github.com/lunanails/NS-BookingService/internal/infra/cache/availability"
	"github.com/lunanails/NS-BookingService/pkg/ptr"
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
	counts map[uuid.UUID]map[types.TimeString]int
	err    error
	calls  int
}

func (m *appointmentRepoMock) CountActiveForDate(_ context.Context, _ []uuid.UUID, _ time.Time) (map[uuid.UUID]map[types.TimeString]int, error) {
	m.calls++
	return m.counts, m.err
}

type capacityRepoMock struct {
	overrides map[domain.OverrideKey]*domain.CapacityOverride
	err       error
}

func (m *capacityRepoMock) ListActiveForDate(_ context.Context, _ []uuid.UUID, _ time.Time) (map[domain.OverrideKey]*domain.CapacityOverride, error) {
	return m.overrides, m.err
}

type cacheMock struct {
	snapshot *availcache.Snapshot
	getErr   error
	setErr   error
	getCalls int
	setCalls int
	stored   *availcache.Snapshot
}

func (m *cacheMock) Get(_ context.Context, _ time.Time, _ []uuid.UUID) (*availcache.Snapshot, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.snapshot, nil
}

func (m *cacheMock) Set(_ context.Context, _ time.Time, _ []uuid.UUID, snapshot *availcache.Snapshot) error {
	m.setCalls++
	m.stored = snapshot
	return m.setErr
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type loggerStub struct{}

func (l *loggerStub) Info(string, ...interface{})  {}
func (l *loggerStub) Warn(string, ...interface{})  {}
func (l *loggerStub) Error(string, ...interface{}) {}

func newTestUseCase(
	catalog *catalogRepoMock,
	appointments *appointmentRepoMock,
	capacity *capacityRepoMock,
	cache AvailabilityCache,
	now time.Time,
) *UseCase {
	uc := NewUseCase(catalog, appointments, capacity, cache, &loggerStub{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	serviceID := uuid.New()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	catalog := &catalogRepoMock{services: []*domain.Service{{
		ID:                  serviceID,
		Name:                "Маникюр",
		MaxBookingsPerSlot:  2,
		DefaultStartTime:    ptr.Ptr(types.TimeString("09:00")),
		DefaultEndTime:      ptr.Ptr(types.TimeString("10:00")),
		SlotDurationMinutes: ptr.Ptr(30),
	}}}
	appointments := &appointmentRepoMock{counts: map[uuid.UUID]map[types.TimeString]int{
		serviceID: {"09:00": 2},
	}}
	capacity := &capacityRepoMock{}

	uc := newTestUseCase(catalog, appointments, capacity, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       date,
		ServiceIDs: []uuid.UUID{serviceID},
	})
	require.NoError(t, err)

	require.Len(t, resp.Services, 1)
	require.Len(t, resp.Services[0].TimeSlots, 3)
	assert.Equal(t, now, resp.LastUpdated)

	assert.False(t, resp.Services[0].TimeSlots[0].IsAvailable)
	assert.True(t, resp.Services[0].TimeSlots[1].IsAvailable)
	assert.Equal(t, 2, resp.Services[0].TimeSlots[1].AvailableSlots)
	assert.Equal(t, types.TimeString("10:00"), resp.Services[0].TimeSlots[2].Time)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&catalogRepoMock{}, &appointmentRepoMock{}, &capacityRepoMock{}, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{ServiceIDs: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Date:       time.Now(),
		ServiceIDs: []uuid.UUID{uuid.New()},
		StartTime:  ptr.Ptr(types.TimeString("18:00")),
		EndTime:    ptr.Ptr(types.TimeString("09:00")),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Date:                time.Now(),
		ServiceIDs:          []uuid.UUID{uuid.New()},
		SlotDurationMinutes: ptr.Ptr(3),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	// каталог вернул меньше услуг, чем запрошено - часть не существует или неактивна
	catalog := &catalogRepoMock{services: []*domain.Service{}}
	uc := newTestUseCase(catalog, &appointmentRepoMock{}, &capacityRepoMock{}, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		Date:       time.Now(),
		ServiceIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_CacheHit(t *testing.T) {
	serviceID := uuid.New()
	cached := &availcache.Snapshot{
		Services:    []domain.ServiceAvailability{{ServiceID: serviceID, ServiceName: "Маникюр"}},
		LastUpdated: time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC),
	}
	cache := &cacheMock{snapshot: cached}
	appointments := &appointmentRepoMock{}

	uc := newTestUseCase(&catalogRepoMock{}, appointments, &capacityRepoMock{}, cache, time.Now())

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       time.Now(),
		ServiceIDs: []uuid.UUID{serviceID},
	})
	require.NoError(t, err)

	assert.Equal(t, cached.Services, resp.Services)
	assert.Equal(t, cached.LastUpdated, resp.LastUpdated)
	assert.Equal(t, 1, cache.getCalls)
	// попадание в кэш не трогает БД
	assert.Equal(t, 0, appointments.calls)
}

func TestExecute_CacheMissFallsThroughAndStores(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{services: []*domain.Service{{ID: serviceID, Name: "Педикюр"}}}
	cache := &cacheMock{getErr: availcache.ErrCacheMiss}

	uc := newTestUseCase(catalog, &appointmentRepoMock{}, &capacityRepoMock{}, cache, time.Now())

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       time.Now(),
		ServiceIDs: []uuid.UUID{serviceID},
	})
	require.NoError(t, err)

	require.Len(t, resp.Services, 1)
	assert.Equal(t, 1, cache.setCalls)
	require.NotNil(t, cache.stored)
	assert.Equal(t, resp.Services, cache.stored.Services)
}

func TestExecute_CacheSkippedWithGridOverrides(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{services: []*domain.Service{{ID: serviceID, Name: "Педикюр"}}}
	cache := &cacheMock{}

	uc := newTestUseCase(catalog, &appointmentRepoMock{}, &capacityRepoMock{}, cache, time.Now())

	// переопределение сетки делает снимок нерепрезентативным
	_, err := uc.Execute(context.Background(), &Request{
		Date:       time.Now(),
		ServiceIDs: []uuid.UUID{serviceID},
		StartTime:  ptr.Ptr(types.TimeString("12:00")),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, cache.getCalls)
	assert.Equal(t, 0, cache.setCalls)
}

func TestExecute_SkipCacheFlag(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{services: []*domain.Service{{ID: serviceID, Name: "Педикюр"}}}
	cache := &cacheMock{snapshot: &availcache.Snapshot{}}

	uc := newTestUseCase(catalog, &appointmentRepoMock{}, &capacityRepoMock{}, cache, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		Date:       time.Now(),
		ServiceIDs: []uuid.UUID{serviceID},
		SkipCache:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, cache.getCalls)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	serviceID := uuid.New()
	catalog := &catalogRepoMock{services: []*domain.Service{{ID: serviceID, Name: "Педикюр"}}}
	appointments := &appointmentRepoMock{err: errors.New("connection refused")}

	uc := newTestUseCase(catalog, appointments, &capacityRepoMock{}, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		Date:       time.Now(),
		ServiceIDs: []uuid.UUID{serviceID},
	})
	assert.ErrorIs(t, err, ErrInternal)
}
