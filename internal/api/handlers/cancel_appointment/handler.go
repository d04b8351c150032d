package cancel_appointment

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
	msgCannotCancel        = "запись уже нельзя отменить"
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

// Handle DELETE /api/v1/admin/appointments/{id}
// Отмена мягкая: запись остается в БД со статусом cancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("DELETE /admin/appointments/{id} - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /admin/appointments/{id} - Not found: id=%s", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrCannotCancel):
			h.logger.Warn("DELETE /admin/appointments/{id} - Cannot cancel: id=%s", id)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("DELETE /admin/appointments/{id} - Failed: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/appointments/{id} - Cancelled: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
