package list_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/api/handlers"
	"github.com/lunanails/NS-BookingService/internal/domain"
	appointmentsService "github.com/lunanails/NS-BookingService/internal/service/appointments"
	"github.com/lunanails/NS-BookingService/internal/service/appointments/models"
)

const msgInvalidQuery = "некорректные параметры запроса"

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/appointments
// Фильтры: customerId, from, to, status - все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListAppointmentsRequest{}

	if raw := query.Get("customerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /admin/appointments - Invalid customerId: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.CustomerID = &id
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/appointments - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.FromDate = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/appointments - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.ToDate = &to
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, appointmentsService.ErrInvalidInput) {
			h.logger.Warn("GET /admin/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /admin/appointments - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/appointments - Returned %d appointments", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
