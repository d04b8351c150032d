package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lunanails/NS-BookingService/internal/api/handlers"
	appointmentsService "github.com/lunanails/NS-BookingService/internal/service/appointments"
	"github.com/lunanails/NS-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidID           = "некорректный идентификатор записи"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStatus       = "недопустимый статус записи"
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

// Handle PUT /api/v1/admin/appointments/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("PUT /admin/appointments/{id}/status - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), &models.UpdateStatusRequest{
		AppointmentID: id,
		Status:        req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PUT /admin/appointments/{id}/status - Not found: id=%s", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrInvalidStatus):
			h.logger.Warn("PUT /admin/appointments/{id}/status - Invalid status: %q", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PUT /admin/appointments/{id}/status - Failed: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/appointments/{id}/status - id=%s, status=%s", id, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
