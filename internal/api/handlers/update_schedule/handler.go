package update_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dkoval/SBP-BookingService/internal/api/handlers"
	"github.com/dkoval/SBP-BookingService/internal/api/middleware"
	"github.com/dkoval/SBP-BookingService/internal/service/schedule"
	"github.com/dkoval/SBP-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание часов работы"
	msgMissingTenant      = "отсутствует тенант запроса"
	msgForeignTenant      = "тенант заголовка не совпадает с тенантом запроса"
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

// Handle PUT /api/v1/tenants/{tenantSlug}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantSlug := mux.Vars(r)["tenantSlug"]

	headerSlug, ok := middleware.GetTenantSlug(r.Context())
	if !ok {
		h.logger.Warn("PUT /tenants/{slug}/schedule - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}
	if headerSlug != tenantSlug {
		h.logger.Warn("PUT /tenants/{slug}/schedule - Tenant mismatch: header=%s, path=%s", headerSlug, tenantSlug)
		handlers.RespondForbidden(w, msgForeignTenant)
		return
	}

	var req models.UpdateOpeningHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{slug}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceOpeningHours(r.Context(), tenantSlug, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /tenants/{slug}/schedule - Invalid schedule: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondUnprocessable(w, msgInvalidSchedule)

		case errors.Is(err, schedule.ErrInternal):
			h.logger.Error("PUT /tenants/{slug}/schedule - Storage failure: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /tenants/{slug}/schedule - Failed to update: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{slug}/schedule - Opening hours updated: tenant=%s", tenantSlug)
	handlers.RespondJSON(w, http.StatusOK, result)
}
