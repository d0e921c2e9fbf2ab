package update_lunch_exceptions

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
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidLunchException = "некорректные параметры обеденного перерыва"
	msgMissingTenant         = "отсутствует тенант запроса"
	msgForeignTenant         = "тенант заголовка не совпадает с тенантом запроса"
	msgMissingDate           = "отсутствует параметр date"
	msgExceptionNotFound     = "исключение обеда на указанную дату не найдено"
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

// HandleUpsert PUT /api/v1/tenants/{tenantSlug}/lunch-exceptions
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	tenantSlug, ok := h.authorizedTenant(w, r, "PUT")
	if !ok {
		return
	}

	var req models.UpsertLunchExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{slug}/lunch-exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertLunchException(r.Context(), tenantSlug, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput), errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("PUT /tenants/{slug}/lunch-exceptions - Invalid exception: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondUnprocessable(w, msgInvalidLunchException)

		case errors.Is(err, schedule.ErrInternal):
			h.logger.Error("PUT /tenants/{slug}/lunch-exceptions - Storage failure: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /tenants/{slug}/lunch-exceptions - Failed to upsert: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{slug}/lunch-exceptions - Exception set: tenant=%s, date=%s", tenantSlug, req.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/tenants/{tenantSlug}/lunch-exceptions?date=YYYY-MM-DD
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenantSlug, ok := h.authorizedTenant(w, r, "DELETE")
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("DELETE /tenants/{slug}/lunch-exceptions - Missing date: tenant=%s", tenantSlug)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	req := &models.DeleteLunchExceptionRequest{Date: date}
	if err := h.service.DeleteLunchException(r.Context(), tenantSlug, req); err != nil {
		switch {
		case errors.Is(err, schedule.ErrLunchExceptionNotFound):
			h.logger.Warn("DELETE /tenants/{slug}/lunch-exceptions - Exception not found: tenant=%s, date=%s",
				tenantSlug, date)
			handlers.RespondNotFound(w, msgExceptionNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /tenants/{slug}/lunch-exceptions - Invalid date: tenant=%s, date=%s", tenantSlug, date)
			handlers.RespondBadRequest(w, msgInvalidLunchException)

		case errors.Is(err, schedule.ErrInternal):
			h.logger.Error("DELETE /tenants/{slug}/lunch-exceptions - Storage failure: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("DELETE /tenants/{slug}/lunch-exceptions - Failed to delete: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /tenants/{slug}/lunch-exceptions - Exception removed: tenant=%s, date=%s", tenantSlug, date)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// authorizedTenant проверяет совпадение тенанта заголовка с тенантом пути
func (h *Handler) authorizedTenant(w http.ResponseWriter, r *http.Request, method string) (string, bool) {
	tenantSlug := mux.Vars(r)["tenantSlug"]

	headerSlug, ok := middleware.GetTenantSlug(r.Context())
	if !ok {
		h.logger.Warn("%s /tenants/{slug}/lunch-exceptions - Missing tenant in context", method)
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return "", false
	}
	if headerSlug != tenantSlug {
		h.logger.Warn("%s /tenants/{slug}/lunch-exceptions - Tenant mismatch: header=%s, path=%s",
			method, headerSlug, tenantSlug)
		handlers.RespondForbidden(w, msgForeignTenant)
		return "", false
	}

	return tenantSlug, true
}
