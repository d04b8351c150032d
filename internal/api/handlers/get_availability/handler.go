package get_availability

import (
	"errors"
	"net/http"

	"github.com/lunanails/NS-BookingService/internal/api/handlers"
	getAvailability "github.com/lunanails/NS-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidQuery    = "некорректные параметры запроса"
	msgServiceNotFound = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := QueryParams{
		Date:         query.Get("date"),
		Services:     query.Get("services"),
		StartTime:    query.Get("start_time"),
		EndTime:      query.Get("end_time"),
		SlotDuration: query.Get("slot_duration"),
		Fresh:        query.Get("fresh"),
	}

	useCaseReq, err := params.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: services=%s", params.Services)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /availability - Failed to calculate availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Calculated availability for %d services on %s",
		len(result.Services), params.Date)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
