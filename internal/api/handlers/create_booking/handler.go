package create_booking

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lunanails/NS-BookingService/internal/api/handlers"
	createBooking "github.com/lunanails/NS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotNotAvailable   = "выбранное время занято"
	msgSlotJustTaken      = "выбранное время только что заняли, попробуйте другой слот"
)

type Handler struct {
	useCase  CreateBookingUseCase
	validate *validator.Validate
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		validate: validator.New(),
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *createBooking.CapacityConflictError

		switch {
		case errors.As(err, &conflict):
			message := msgSlotNotAvailable
			if conflict.Raced {
				message = msgSlotJustTaken
			}
			h.logger.Warn("POST /bookings - Capacity conflict: email=%s, conflicts=%v, raced=%v",
				req.Customer.Email, conflict.ServiceNames, conflict.Raced)
			handlers.RespondJSON(w, http.StatusConflict, FromConflictError(conflict, message))

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: email=%s", req.Customer.Email)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: email=%s, error=%v",
				req.Customer.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: appointment_id=%s, email=%s",
		result.ID, req.Customer.Email)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
