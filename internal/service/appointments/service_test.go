package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunanails/NS-BookingService/internal/domain"
	appointmentRepo "github.com/lunanails/NS-BookingService/internal/infra/storage/appointment"
	"github.com/lunanails/NS-BookingService/internal/service/appointments/models"
	"github.com/lunanails/NS-BookingService/pkg/ptr"
)

type appointmentRepoMock struct {
	appointments map[uuid.UUID]*domain.Appointment
	listed       []*domain.Appointment
	updateErr    error
	lastFilter   domain.AppointmentsFilter
}

func (m *appointmentRepoMock) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	appt, ok := m.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (m *appointmentRepoMock) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	m.lastFilter = filter
	return m.listed, nil
}

func (m *appointmentRepoMock) UpdateStatus(_ context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	appt, ok := m.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

type calendarMock struct {
	deleted []string
	err     error
}

func (m *calendarMock) DeleteEvent(_ context.Context, eventID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, eventID)
	return nil
}

type loggerStub struct{}

func (l *loggerStub) Info(string, ...interface{})  {}
func (l *loggerStub) Warn(string, ...interface{})  {}
func (l *loggerStub) Error(string, ...interface{}) {}

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Date:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		Status:     status,
		Services: []domain.AppointmentService{
			{ServiceID: uuid.New(), ServiceName: "Маникюр", Quantity: 2, PriceAtBooking: 1500},
		},
	}
}

func repoWith(appointments ...*domain.Appointment) *appointmentRepoMock {
	byID := make(map[uuid.UUID]*domain.Appointment, len(appointments))
	for _, appt := range appointments {
		byID[appt.ID] = appt
	}
	return &appointmentRepoMock{appointments: byID}
}

func TestGetByID(t *testing.T) {
	appt := testAppointment(domain.StatusConfirmed)
	svc := NewService(repoWith(appt), nil, &loggerStub{})

	resp, err := svc.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)

	assert.Equal(t, appt.ID, resp.ID)
	assert.Equal(t, "2026-09-01", resp.Date)
	assert.Equal(t, 3000.0, resp.TotalPrice)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(repoWith(), nil, &loggerStub{})

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_FilterPassedThrough(t *testing.T) {
	repo := repoWith()
	repo.listed = []*domain.Appointment{testAppointment(domain.StatusPending)}
	svc := NewService(repo, nil, &loggerStub{})

	customerID := uuid.New()
	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		CustomerID: &customerID,
		Status:     ptr.Ptr("pending"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Appointments, 1)
	require.NotNil(t, repo.lastFilter.CustomerID)
	assert.Equal(t, customerID, *repo.lastFilter.CustomerID)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusPending, *repo.lastFilter.Status)
}

func TestList_InvalidStatus(t *testing.T) {
	svc := NewService(repoWith(), nil, &loggerStub{})

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		Status: ptr.Ptr("paused"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	appt := testAppointment(domain.StatusPending)
	svc := NewService(repoWith(appt), nil, &loggerStub{})

	resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		AppointmentID: appt.ID,
		Status:        "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := NewService(repoWith(), nil, &loggerStub{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		AppointmentID: uuid.New(),
		Status:        "done",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel(t *testing.T) {
	appt := testAppointment(domain.StatusConfirmed)
	svc := NewService(repoWith(appt), nil, &loggerStub{})

	resp, err := svc.Cancel(context.Background(), appt.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	// мягкая отмена: запись остается доступной
	assert.Equal(t, domain.StatusCancelled, appt.Status)
	assert.False(t, appt.CountsTowardCapacity())
}

func TestCancel_CompletedRejected(t *testing.T) {
	appt := testAppointment(domain.StatusCompleted)
	svc := NewService(repoWith(appt), nil, &loggerStub{})

	_, err := svc.Cancel(context.Background(), appt.ID)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, domain.StatusCompleted, appt.Status)
}

func TestCancel_AlreadyCancelledRejected(t *testing.T) {
	appt := testAppointment(domain.StatusCancelled)
	svc := NewService(repoWith(appt), nil, &loggerStub{})

	_, err := svc.Cancel(context.Background(), appt.ID)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_DeletesCalendarEvent(t *testing.T) {
	appt := testAppointment(domain.StatusConfirmed)
	appt.CalendarEventID = ptr.Ptr("evt-42")
	calendar := &calendarMock{}
	svc := NewService(repoWith(appt), calendar, &loggerStub{})

	_, err := svc.Cancel(context.Background(), appt.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"evt-42"}, calendar.deleted)
}

func TestCancel_CalendarFailureDoesNotFailCancel(t *testing.T) {
	appt := testAppointment(domain.StatusConfirmed)
	appt.CalendarEventID = ptr.Ptr("evt-42")
	calendar := &calendarMock{err: errors.New("calendar down")}
	svc := NewService(repoWith(appt), calendar, &loggerStub{})

	resp, err := svc.Cancel(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}
