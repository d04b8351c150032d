package get_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lunanails/NS-BookingService/internal/api/handlers"
	appointmentsService "github.com/lunanails/NS-BookingService/internal/service/appointments"
)

const (
	msgInvalidID           = "некорректный идентификатор записи"
	msgAppointmentNotFound = "запись не найдена"
)

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

// Handle GET /api/v1/admin/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("GET /admin/appointments/{id} - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, appointmentsService.ErrAppointmentNotFound) {
			h.logger.Warn("GET /admin/appointments/{id} - Not found: id=%s", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)
			return
		}
		h.logger.Error("GET /admin/appointments/{id} - Failed: id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/appointments/{id} - id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
