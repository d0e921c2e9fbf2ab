package update_staff_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkoval/SBP-BookingService/internal/api/handlers"
	"github.com/dkoval/SBP-BookingService/internal/api/middleware"
	"github.com/dkoval/SBP-BookingService/internal/service/schedule"
	"github.com/dkoval/SBP-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidStaffID      = "некорректный идентификатор сотрудника"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidAvailability = "некорректное расписание доступности сотрудника"
	msgMissingTenant       = "отсутствует тенант запроса"
	msgForeignTenant       = "тенант заголовка не совпадает с тенантом запроса"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/tenants/{tenantSlug}/staff/{staffId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantSlug := vars["tenantSlug"]

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /tenants/{slug}/staff/{id}/availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	headerSlug, ok := middleware.GetTenantSlug(r.Context())
	if !ok {
		h.logger.Warn("PUT /tenants/{slug}/staff/{id}/availability - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}
	if headerSlug != tenantSlug {
		h.logger.Warn("PUT /tenants/{slug}/staff/{id}/availability - Tenant mismatch: header=%s, path=%s",
			headerSlug, tenantSlug)
		handlers.RespondForbidden(w, msgForeignTenant)
		return
	}

	var req models.UpdateStaffWeekRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{slug}/staff/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceStaffWeek(r.Context(), tenantSlug, staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /tenants/{slug}/staff/{id}/availability - Invalid availability: tenant=%s, staff=%d, error=%v",
				tenantSlug, staffID, err)
			handlers.RespondUnprocessable(w, msgInvalidAvailability)

		case errors.Is(err, schedule.ErrInternal):
			h.logger.Error("PUT /tenants/{slug}/staff/{id}/availability - Storage failure: tenant=%s, staff=%d, error=%v",
				tenantSlug, staffID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /tenants/{slug}/staff/{id}/availability - Failed to update: tenant=%s, staff=%d, error=%v",
				tenantSlug, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{slug}/staff/{id}/availability - Availability updated: tenant=%s, staff=%d",
		tenantSlug, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
