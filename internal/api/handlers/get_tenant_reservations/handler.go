package get_tenant_reservations

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dkoval/SBP-BookingService/internal/api/handlers"
	"github.com/dkoval/SBP-BookingService/internal/api/middleware"
	"github.com/dkoval/SBP-BookingService/internal/service/reservations"
)

const (
	msgInvalidQuery  = "некорректные параметры запроса"
	msgMissingTenant = "отсутствует тенант запроса"
	msgForeignTenant = "тенант заголовка не совпадает с тенантом запроса"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantSlug}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantSlug := mux.Vars(r)["tenantSlug"]

	headerSlug, ok := middleware.GetTenantSlug(r.Context())
	if !ok {
		h.logger.Warn("GET /tenants/{slug}/reservations - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}
	if headerSlug != tenantSlug {
		h.logger.Warn("GET /tenants/{slug}/reservations - Tenant mismatch: header=%s, path=%s", headerSlug, tenantSlug)
		handlers.RespondForbidden(w, msgForeignTenant)
		return
	}

	req, err := ParseQuery(tenantSlug, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /tenants/{slug}/reservations - Invalid query: tenant=%s, error=%v", tenantSlug, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetTenantReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{slug}/reservations - Invalid filter: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, reservations.ErrInternal):
			h.logger.Error("GET /tenants/{slug}/reservations - Storage failure: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /tenants/{slug}/reservations - Failed to fetch: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{slug}/reservations - Fetched %d reservations: tenant=%s",
		len(result.Reservations), tenantSlug)
	handlers.RespondJSON(w, http.StatusOK, result)
}
