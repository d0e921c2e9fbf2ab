package create_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dkoval/SBP-BookingService/internal/api/handlers"
	"github.com/dkoval/SBP-BookingService/internal/api/middleware"
	"github.com/dkoval/SBP-BookingService/internal/schedule"
	createReservation "github.com/dkoval/SBP-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDateOrTime      = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingTenant          = "отсутствует тенант запроса"
	msgForeignTenant          = "тенант заголовка не совпадает с тенантом запроса"
	msgServiceNotFound        = "услуга не найдена или неактивна"
	msgInvalidInterval        = "некорректный интервал бронирования"
	msgOutsideOpeningHours    = "интервал выходит за рабочие часы"
	msgOutsideStaffWindow     = "интервал выходит за рабочее окно сотрудника"
	msgSlotOccupied           = "интервал пересекается с существующим бронированием или обедом"
	msgInvalidReservationDate = "некорректная дата бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantSlug}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantSlug := mux.Vars(r)["tenantSlug"]

	// Тенант заголовка должен совпадать с тенантом пути
	headerSlug, ok := middleware.GetTenantSlug(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}
	if headerSlug != tenantSlug {
		h.logger.Warn("POST /reservations - Tenant mismatch: header=%s, path=%s", headerSlug, tenantSlug)
		handlers.RespondForbidden(w, msgForeignTenant)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantSlug)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: tenant=%s, service_id=%d", tenantSlug, req.ServiceID)
			handlers.RespondConflict(w, handlers.CodeServiceNotFound, msgServiceNotFound)

		case errors.Is(err, schedule.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - Invalid interval: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondConflict(w, handlers.CodeInvalidInterval, msgInvalidInterval)

		case errors.Is(err, schedule.ErrOutsideOpeningHours):
			h.logger.Warn("POST /reservations - Outside opening hours: tenant=%s, date=%s, time=%s",
				tenantSlug, req.Date, req.StartTime)
			handlers.RespondConflict(w, handlers.CodeOutsideOpeningHours, msgOutsideOpeningHours)

		case errors.Is(err, schedule.ErrOutsideStaffAvailability):
			h.logger.Warn("POST /reservations - Outside staff availability: tenant=%s, staff=%v", tenantSlug, req.StaffID)
			handlers.RespondConflict(w, handlers.CodeOutsideStaffAvailability, msgOutsideStaffWindow)

		case errors.Is(err, schedule.ErrSlotOccupied):
			h.logger.Warn("POST /reservations - Slot occupied: tenant=%s, date=%s, time=%s",
				tenantSlug, req.Date, req.StartTime)
			handlers.RespondConflict(w, handlers.CodeSlotOccupied, msgSlotOccupied)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Past date: tenant=%s, date=%s", tenantSlug, req.Date)
			handlers.RespondUnprocessable(w, msgInvalidReservationDate)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondUnprocessable(w, msgInvalidRequestBody)

		case errors.Is(err, createReservation.ErrInternal):
			h.logger.Error("POST /reservations - Storage failure: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: tenant=%s, error=%v", tenantSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, tenant=%s", result.ID, tenantSlug)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
