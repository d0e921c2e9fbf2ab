package get_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkoval/SBP-BookingService/internal/api/handlers"
	"github.com/dkoval/SBP-BookingService/internal/service/catalog"
)

const msgInvalidQuery = "некорректные параметры запроса"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantSlug}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantSlug := mux.Vars(r)["tenantSlug"]

	includeInactive := false
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /tenants/{slug}/services - Invalid includeInactive=%s: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		includeInactive = parsed
	}

	result, err := h.service.ListServices(r.Context(), tenantSlug, includeInactive)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInternal):
			h.logger.Error("GET /tenants/{slug}/services - Storage failure: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /tenants/{slug}/services - Failed to fetch: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{slug}/services - Fetched %d services: tenant=%s",
		len(result.Services), tenantSlug)
	handlers.RespondJSON(w, http.StatusOK, result)
}
