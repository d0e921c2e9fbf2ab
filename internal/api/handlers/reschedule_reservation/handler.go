package reschedule_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkoval/SBP-BookingService/internal/api/handlers"
	"github.com/dkoval/SBP-BookingService/internal/api/middleware"
	"github.com/dkoval/SBP-BookingService/internal/schedule"
	rescheduleReservation "github.com/dkoval/SBP-BookingService/internal/usecase/reschedule_reservation"
)

const (
	msgInvalidReservationID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDateOrTime      = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingTenant          = "отсутствует тенант запроса"
	msgReservationNotFound    = "бронирование не найдено"
	msgCannotReschedule       = "бронирование нельзя перенести в текущем статусе"
	msgServiceNotFound        = "услуга не найдена или неактивна"
	msgInvalidInterval        = "некорректный интервал бронирования"
	msgOutsideOpeningHours    = "интервал выходит за рабочие часы"
	msgOutsideStaffWindow     = "интервал выходит за рабочее окно сотрудника"
	msgSlotOccupied           = "интервал пересекается с существующим бронированием или обедом"
	msgInvalidReservationDate = "некорректная дата бронирования"
)

type Handler struct {
	useCase RescheduleReservationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	tenantSlug, ok := middleware.GetTenantSlug(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantSlug, reservationID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%d, tenant=%s",
				reservationID, tenantSlug)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, rescheduleReservation.ErrCannotReschedule):
			h.logger.Warn("PATCH /reservations/{id} - Cannot reschedule: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotReschedule)

		case errors.Is(err, schedule.ErrServiceNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Service not found: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, handlers.CodeServiceNotFound, msgServiceNotFound)

		case errors.Is(err, schedule.ErrInvalidInterval):
			h.logger.Warn("PATCH /reservations/{id} - Invalid interval: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondConflict(w, handlers.CodeInvalidInterval, msgInvalidInterval)

		case errors.Is(err, schedule.ErrOutsideOpeningHours):
			h.logger.Warn("PATCH /reservations/{id} - Outside opening hours: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, handlers.CodeOutsideOpeningHours, msgOutsideOpeningHours)

		case errors.Is(err, schedule.ErrOutsideStaffAvailability):
			h.logger.Warn("PATCH /reservations/{id} - Outside staff availability: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, handlers.CodeOutsideStaffAvailability, msgOutsideStaffWindow)

		case errors.Is(err, schedule.ErrSlotOccupied):
			h.logger.Warn("PATCH /reservations/{id} - Slot occupied: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, handlers.CodeSlotOccupied, msgSlotOccupied)

		case errors.Is(err, rescheduleReservation.ErrInvalidDate):
			h.logger.Warn("PATCH /reservations/{id} - Past date: reservation_id=%d", reservationID)
			handlers.RespondUnprocessable(w, msgInvalidReservationDate)

		case errors.Is(err, rescheduleReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondUnprocessable(w, msgInvalidRequestBody)

		case errors.Is(err, rescheduleReservation.ErrInternal):
			h.logger.Error("PATCH /reservations/{id} - Storage failure: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to reschedule: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation rescheduled: reservation_id=%d, tenant=%s",
		result.ID, tenantSlug)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
