package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dkoval/SBP-BookingService/internal/api/handlers"
	"github.com/dkoval/SBP-BookingService/internal/domain"
	getAvailability "github.com/dkoval/SBP-BookingService/internal/usecase/get_availability"
	"github.com/dkoval/SBP-BookingService/pkg/ptr"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidGranularity = "некорректный шаг сетки"
	msgInvalidDateRange   = "некорректный диапазон дат"
	msgServiceNotFound    = "услуга не найдена"
)

// DefaultRangeDays размер диапазона по умолчанию, когда from/to не заданы
const DefaultRangeDays = 7

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

// Handle GET /api/v1/tenants/{tenantSlug}/availability?serviceId=&staffId=&from=&to=&granularity=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantSlug := vars["tenantSlug"]
	query := r.URL.Query()

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var staffID *int64
	if raw := query.Get("staffId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = ptr.Ptr(id)
	}

	// from/to по умолчанию: неделя, начиная с сегодняшнего дня
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if raw := query.Get("from"); raw != "" {
		from, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	to := from.AddDate(0, 0, DefaultRangeDays-1)
	if raw := query.Get("to"); raw != "" {
		to, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	granularity := 0
	if raw := query.Get("granularity"); raw != "" {
		granularity, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid granularity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		TenantSlug:  tenantSlug,
		ServiceID:   serviceID,
		StaffID:     staffID,
		FromDate:    from,
		ToDate:      to,
		Granularity: granularity,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: tenant=%s, service_id=%d", tenantSlug, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDateRange):
			h.logger.Warn("GET /availability - Invalid date range: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getAvailability.ErrInternal):
			h.logger.Error("GET /availability - Storage failure: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /availability - Failed: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Grid computed: tenant=%s, service_id=%d, days=%d",
		tenantSlug, serviceID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
