package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/lunanails/NS-BookingService/internal/usecase/create_booking"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

type useCaseMock struct {
	response *createBooking.Response
	err      error
	lastReq  *createBooking.Request
}

func (m *useCaseMock) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

type loggerStub struct{}

func (l *loggerStub) Info(string, ...interface{})  {}
func (l *loggerStub) Warn(string, ...interface{})  {}
func (l *loggerStub) Error(string, ...interface{}) {}

func validBody(serviceID string) string {
	return `{
		"customer": {"firstName": "Анна", "lastName": "Иванова", "email": "anna@example.com"},
		"date": "2026-09-01",
		"time": "10:00",
		"services": [{"serviceId": "` + serviceID + `", "quantity": 2}]
	}`
}

func doRequest(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	serviceID := uuid.New()
	mock := &useCaseMock{response: &createBooking.Response{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Date:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		Status:     "confirmed",
		TotalPrice: 3000,
		CreatedAt:  time.Now(),
	}}
	h := NewHandler(mock, &loggerStub{})

	rec := doRequest(h, validBody(serviceID.String()))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-01", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, 3000.0, resp.TotalPrice)

	// quantity из запроса дошел до use case
	require.NotNil(t, mock.lastReq)
	require.Len(t, mock.lastReq.Items, 1)
	assert.Equal(t, 2, mock.lastReq.Items[0].Quantity)
}

func TestHandle_QuantityDefaultsToOne(t *testing.T) {
	serviceID := uuid.New()
	mock := &useCaseMock{response: &createBooking.Response{
		ID: uuid.New(), Date: time.Now(), StartTime: "10:00", CreatedAt: time.Now(),
	}}
	h := NewHandler(mock, &loggerStub{})

	body := `{
		"customer": {"firstName": "Анна", "lastName": "Иванова", "email": "anna@example.com"},
		"date": "2026-09-01",
		"time": "10:00",
		"services": [{"serviceId": "` + serviceID.String() + `"}]
	}`
	rec := doRequest(h, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, mock.lastReq.Items[0].Quantity)
}

func TestHandle_Conflict(t *testing.T) {
	serviceID := uuid.New()
	mock := &useCaseMock{err: &createBooking.CapacityConflictError{
		ServiceNames: []string{"Маникюр"},
		Suggestions:  []types.TimeString{"10:30", "09:30"},
	}}
	h := NewHandler(mock, &loggerStub{})

	rec := doRequest(h, validBody(serviceID.String()))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgSlotNotAvailable, resp.Message)
	assert.Equal(t, []string{"Маникюр"}, resp.Conflicts)
	assert.Equal(t, []string{"10:30", "09:30"}, resp.Suggestions)
}

func TestHandle_RacedConflictMessage(t *testing.T) {
	serviceID := uuid.New()
	mock := &useCaseMock{err: &createBooking.CapacityConflictError{
		ServiceNames: []string{"Маникюр"},
		Raced:        true,
	}}
	h := NewHandler(mock, &loggerStub{})

	rec := doRequest(h, validBody(serviceID.String()))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgSlotJustTaken, resp.Message)
}

func TestHandle_ServiceNotFound(t *testing.T) {
	mock := &useCaseMock{err: createBooking.ErrServiceNotFound}
	h := NewHandler(mock, &loggerStub{})

	rec := doRequest(h, validBody(uuid.New().String()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_BadRequests(t *testing.T) {
	h := NewHandler(&useCaseMock{}, &loggerStub{})

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "broken json", body: "{"},
		{
			name: "missing email",
			body: `{"customer": {"firstName": "Анна", "lastName": "Иванова"}, "date": "2026-09-01", "time": "10:00", "services": [{"serviceId": "` + uuid.New().String() + `"}]}`,
		},
		{
			name: "bad date format",
			body: `{"customer": {"firstName": "Анна", "lastName": "Иванова", "email": "anna@example.com"}, "date": "01.09.2026", "time": "10:00", "services": [{"serviceId": "` + uuid.New().String() + `"}]}`,
		},
		{
			name: "no services",
			body: `{"customer": {"firstName": "Анна", "lastName": "Иванова", "email": "anna@example.com"}, "date": "2026-09-01", "time": "10:00", "services": []}`,
		},
		{
			name: "bad service id",
			body: `{"customer": {"firstName": "Анна", "lastName": "Иванова", "email": "anna@example.com"}, "date": "2026-09-01", "time": "10:00", "services": [{"serviceId": "not-a-uuid"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	mock := &useCaseMock{err: errors.New("db down")}
	h := NewHandler(mock, &loggerStub{})

	rec := doRequest(h, validBody(uuid.New().String()))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
