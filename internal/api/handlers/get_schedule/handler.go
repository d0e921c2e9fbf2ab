package get_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dkoval/SBP-BookingService/internal/api/handlers"
	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/internal/service/schedule"
)

const (
	msgInvalidQuery = "некорректные параметры запроса"

	// DefaultRangeDays период расписания по умолчанию, когда границы не заданы
	DefaultRangeDays = 7
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

// Handle GET /api/v1/tenants/{tenantSlug}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantSlug := mux.Vars(r)["tenantSlug"]
	query := r.URL.Query()

	from := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := query.Get("from"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /tenants/{slug}/schedule - Invalid from=%s: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		from = parsed
	}

	to := from.AddDate(0, 0, DefaultRangeDays-1)
	if raw := query.Get("to"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /tenants/{slug}/schedule - Invalid to=%s: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		to = parsed
	}

	result, err := h.service.GetSchedule(r.Context(), tenantSlug, from, to)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{slug}/schedule - Invalid period: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, schedule.ErrInternal):
			h.logger.Error("GET /tenants/{slug}/schedule - Storage failure: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /tenants/{slug}/schedule - Failed to fetch: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{slug}/schedule - Schedule fetched: tenant=%s", tenantSlug)
	handlers.RespondJSON(w, http.StatusOK, result)
}
