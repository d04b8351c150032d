package availability_actions

import (
	"errors"
	"net/http"

	"github.com/lunanails/NS-BookingService/internal/api/handlers"
	checkBooking "github.com/lunanails/NS-BookingService/internal/usecase/check_booking"
	getAvailableSlots "github.com/lunanails/NS-BookingService/internal/usecase/get_available_slots"
)

const (
	actionCheckBooking      = "check_booking"
	actionGetAvailableSlots = "get_available_slots"
	actionSuggestSlots      = "suggest_slots"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownAction      = "неизвестное действие"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	checkUseCase CheckBookingUseCase
	slotsUseCase GetAvailableSlotsUseCase
	logger       Logger
}

func NewHandler(checkUseCase CheckBookingUseCase, slotsUseCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		checkUseCase: checkUseCase,
		slotsUseCase: slotsUseCase,
		logger:       logger,
	}
}

// Handle POST /api/v1/availability
// Действие задается полем action тела запроса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch req.Action {
	case actionCheckBooking:
		h.handleCheck(w, r, &req)
	case actionGetAvailableSlots:
		h.handleSlots(w, r, &req)
	case actionSuggestSlots:
		h.handleSuggest(w, r, &req)
	default:
		h.logger.Warn("POST /availability - Unknown action: %q", req.Action)
		handlers.RespondBadRequest(w, msgUnknownAction)
	}
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request, req *ActionRequest) {
	useCaseReq, err := req.ToCheckRequest()
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse check request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.checkUseCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkBooking.ErrServiceNotFound):
			h.logger.Warn("POST /availability - Service not found")
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, checkBooking.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /availability - Check failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Check: canBook=%v, conflicts=%d", result.CanBook, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromCheckResponse(result))
}

func (h *Handler) handleSlots(w http.ResponseWriter, r *http.Request, req *ActionRequest) {
	useCaseReq, err := req.ToSlotsRequest()
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse slots request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.slotsUseCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondSlotsError(w, err)
		return
	}

	h.logger.Info("POST /availability - Found %d common slots", len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromSlotsResponse(result))
}

func (h *Handler) handleSuggest(w http.ResponseWriter, r *http.Request, req *ActionRequest) {
	useCaseReq, err := req.ToSuggestRequest()
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse suggest request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.slotsUseCase.Suggest(r.Context(), useCaseReq)
	if err != nil {
		h.respondSlotsError(w, err)
		return
	}

	h.logger.Info("POST /availability - Suggested %d alternative slots", len(result.Suggestions))
	handlers.RespondJSON(w, http.StatusOK, FromSuggestResponse(result))
}

func (h *Handler) respondSlotsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
		h.logger.Warn("POST /availability - Service not found")
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, getAvailableSlots.ErrInvalidInput):
		h.logger.Warn("POST /availability - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("POST /availability - Slots lookup failed: %v", err)
		handlers.RespondInternalError(w)
	}
}
