package capacity_admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/api/handlers"
	"github.com/lunanails/NS-BookingService/internal/domain"
	capacityService "github.com/lunanails/NS-BookingService/internal/service/capacity"
)

const (
	actionUpdateCapacity     = "update_capacity"
	actionSetOverride        = "set_override"
	actionDeactivateOverride = "deactivate_override"
	actionAddToWaitlist      = "add_to_waitlist"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgUnknownAction      = "неизвестное действие"
	msgServiceNotFound    = "услуга не найдена"
	msgOverrideNotFound   = "переопределение не найдено"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGet GET /api/v1/admin/capacity
// Возвращает настройки услуги вместе с переопределениями и листом ожидания
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceID, err := uuid.Parse(query.Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /admin/capacity - Invalid serviceId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	fromDate := time.Now()
	if raw := query.Get("from"); raw != "" {
		fromDate, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/capacity - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
	}

	config, err := h.service.GetServiceConfig(r.Context(), serviceID)
	if err != nil {
		if errors.Is(err, capacityService.ErrServiceNotFound) {
			h.logger.Warn("GET /admin/capacity - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
			return
		}
		h.logger.Error("GET /admin/capacity - Failed to get config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	overrides, err := h.service.ListOverrides(r.Context(), serviceID, fromDate)
	if err != nil {
		h.logger.Error("GET /admin/capacity - Failed to list overrides: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	waitlist, err := h.service.ListWaitlist(r.Context(), serviceID, nil)
	if err != nil {
		h.logger.Error("GET /admin/capacity - Failed to list waitlist: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/capacity - service_id=%s, overrides=%d, waitlist=%d",
		serviceID, len(overrides.Overrides), len(waitlist.Entries))
	handlers.RespondJSON(w, http.StatusOK, CapacityOverviewResponse{
		Config:    config,
		Overrides: overrides.Overrides,
		Waitlist:  waitlist.Entries,
	})
}

// HandlePost POST /api/v1/admin/capacity
// Действие задается полем action тела запроса
func (h *Handler) HandlePost(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/capacity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch req.Action {
	case actionUpdateCapacity:
		h.handleUpdateCapacity(w, r, &req)
	case actionSetOverride:
		h.handleSetOverride(w, r, &req)
	case actionDeactivateOverride:
		h.handleDeactivateOverride(w, r, &req)
	case actionAddToWaitlist:
		h.handleAddToWaitlist(w, r, &req)
	default:
		h.logger.Warn("POST /admin/capacity - Unknown action: %q", req.Action)
		handlers.RespondBadRequest(w, msgUnknownAction)
	}
}

func (h *Handler) handleUpdateCapacity(w http.ResponseWriter, r *http.Request, req *ActionRequest) {
	serviceReq, err := req.ToUpdateCapacityRequest()
	if err != nil {
		h.logger.Warn("POST /admin/capacity - Failed to parse update_capacity: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateServiceCapacity(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.logger.Info("POST /admin/capacity - Updated capacity: service_id=%s", serviceReq.ServiceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSetOverride(w http.ResponseWriter, r *http.Request, req *ActionRequest) {
	serviceReq, err := req.ToSetOverrideRequest()
	if err != nil {
		h.logger.Warn("POST /admin/capacity - Failed to parse set_override: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetOverride(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.logger.Info("POST /admin/capacity - Set override: id=%s, service_id=%s", result.ID, serviceReq.ServiceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleDeactivateOverride(w http.ResponseWriter, r *http.Request, req *ActionRequest) {
	overrideID, err := uuid.Parse(req.OverrideID)
	if err != nil {
		h.logger.Warn("POST /admin/capacity - Invalid overrideId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.DeactivateOverride(r.Context(), overrideID); err != nil {
		if errors.Is(err, capacityService.ErrOverrideNotFound) {
			h.logger.Warn("POST /admin/capacity - Override not found: id=%s", overrideID)
			handlers.RespondNotFound(w, msgOverrideNotFound)
			return
		}
		h.respondServiceError(w, err)
		return
	}

	h.logger.Info("POST /admin/capacity - Deactivated override: id=%s", overrideID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) handleAddToWaitlist(w http.ResponseWriter, r *http.Request, req *ActionRequest) {
	serviceReq, err := req.ToAddToWaitlistRequest()
	if err != nil {
		h.logger.Warn("POST /admin/capacity - Failed to parse add_to_waitlist: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddToWaitlist(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.logger.Info("POST /admin/capacity - Added to waitlist: entry_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, capacityService.ErrServiceNotFound):
		h.logger.Warn("POST /admin/capacity - Service not found")
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, capacityService.ErrInvalidInput):
		h.logger.Warn("POST /admin/capacity - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("POST /admin/capacity - Service error: %v", err)
		handlers.RespondInternalError(w)
	}
}
