package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	reservationRepo "github.com/dkoval/SBP-BookingService/internal/infra/storage/reservation"
	serviceRepo "github.com/dkoval/SBP-BookingService/internal/infra/storage/service"
	"github.com/dkoval/SBP-BookingService/internal/schedule"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	granularity     int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	granularity int,
	logger Logger,
) *UseCase {
	if granularity <= 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		granularity:     granularity,
	}
}

// Execute выполняет перенос бронирования. Новый интервал проходит те же
// проверки, что и при создании, но собственный старый интервал бронирования
// исключается из проверки занятости: перенос на полчаса вперёд с
// пересечением старого интервала допустим.
//
// Помимо собственных ошибок usecase может вернуть типизированные причины
// конфликта из пакета schedule.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: tenant=%s, reservation=%d", req.TenantSlug, req.ReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleReservation: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Reservation

	// 2. Чтение, проверка конфликтов и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Бронирование должно существовать и принадлежать тенанту
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		if reservation.TenantSlug != req.TenantSlug {
			return ErrReservationNotFound
		}

		if !reservation.CanBeRescheduled() {
			return ErrCannotReschedule
		}

		// 2.2. Сливаем новые значения с текущими: опущенные поля не меняются
		newDate := reservation.ReservationDate
		if req.Date != nil {
			newDate = *req.Date
		}
		newStart := reservation.StartTime
		if req.StartTime != nil {
			newStart = *req.StartTime
		}
		newStaff := reservation.StaffID
		if req.StaffProvided {
			newStaff = req.StaffID
		}

		if err := validateDate(newDate, uc.timeProvider.Now()); err != nil {
			return err
		}

		// 2.3. Услуга по-прежнему должна существовать и быть активной
		service, err := uc.serviceRepo.GetByID(txCtx, req.TenantSlug, reservation.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return schedule.ErrServiceNotFound
			}
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		// 2.4. Конфигурация расписания и занятость новой даты (FOR UPDATE)
		hours, err := uc.scheduleRepo.GetOpeningHours(txCtx, req.TenantSlug)
		if err != nil {
			return fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
		}

		staffWeeks, err := uc.scheduleRepo.GetAllStaffWeeks(txCtx, req.TenantSlug)
		if err != nil {
			return fmt.Errorf("%w: failed to get staff availability: %v", ErrInternal, err)
		}

		lunches, err := uc.scheduleRepo.GetLunchExceptions(txCtx, req.TenantSlug, newDate, newDate)
		if err != nil {
			return fmt.Errorf("%w: failed to get lunch exceptions: %v", ErrInternal, err)
		}

		filter := domain.TenantReservationsFilter{
			TenantSlug: req.TenantSlug,
			StartDate:  &newDate,
			EndDate:    &newDate,
		}
		reservations, err := uc.reservationRepo.GetByTenantWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 2.5. Проверяем новый интервал, исключив собственное бронирование
		index := schedule.BuildOccupancyIndex(reservations, lunches, newDate, newDate)
		detector := schedule.NewDetector(hours, staffWeeks, index, uc.granularity)

		proposal := schedule.Proposal{
			Service: service,
			StaffID: newStaff,
			Date:    newDate,
			Start:   newStart,
		}
		if err := detector.ValidateExcluding(proposal, reservation.ID); err != nil {
			return err
		}

		// 2.6. Применяем перенос
		if err := uc.reservationRepo.UpdateSchedule(txCtx, reservation.ID, newDate, newStart, newStaff); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		reservation.ReservationDate = newDate
		reservation.StartTime = newStart
		reservation.StaffID = newStaff
		result = reservation
		return nil
	})

	if err != nil {
		if schedule.IsConflict(err) {
			uc.logger.Warn("RescheduleReservation: conflict for reservation id=%d: %v", req.ReservationID, err)
		} else if errors.Is(err, ErrReservationNotFound) || errors.Is(err, ErrCannotReschedule) || errors.Is(err, ErrInvalidDate) {
			uc.logger.Warn("RescheduleReservation: rejected for reservation id=%d: %v", req.ReservationID, err)
		} else {
			uc.logger.Error("RescheduleReservation: failed for reservation id=%d: %v", req.ReservationID, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleReservation: successfully moved reservation id=%d to %s %s",
		result.ID, result.ReservationDate.Format(domain.DateFormat), result.StartTime)

	return toResponse(result), nil
}

func toResponse(r *domain.Reservation) *Response {
	var endTime types.TimeString
	if end, err := r.EndTime(); err == nil {
		endTime = end
	}

	return &Response{
		ID:                r.ID,
		TenantSlug:        r.TenantSlug,
		ServiceID:         r.ServiceID,
		StaffID:           r.StaffID,
		ReservationDate:   r.ReservationDate,
		StartTime:         r.StartTime,
		EndTime:           endTime,
		DurationMinutes:   r.DurationMinutes,
		Status:            string(r.Status),
		ServiceName:       r.ServiceName,
		ServicePriceMinor: r.ServicePriceMinor,
		CustomerName:      r.CustomerName,
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
