package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	serviceRepo "github.com/dkoval/SBP-BookingService/internal/infra/storage/service"
	"github.com/dkoval/SBP-BookingService/internal/schedule"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции:
// чтение бронирований даты берёт блокировку FOR UPDATE, поэтому два
// конкурентных запроса на пересекающиеся интервалы не пройдут оба.
//
// Помимо собственных ошибок usecase может вернуть типизированные причины
// конфликта из пакета schedule: ErrServiceNotFound, ErrInvalidInterval,
// ErrOutsideOpeningHours, ErrOutsideStaffAvailability, ErrSlotOccupied.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: tenant=%s, service=%d, staff=%v, date=%s, time=%s",
		req.TenantSlug, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	var result *domain.Reservation

	// 3. Проверка конфликтов и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Услуга должна существовать и быть активной
		service, err := uc.serviceRepo.GetByID(txCtx, req.TenantSlug, req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return schedule.ErrServiceNotFound
			}
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		// 3.2. Конфигурация расписания
		hours, err := uc.scheduleRepo.GetOpeningHours(txCtx, req.TenantSlug)
		if err != nil {
			return fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
		}

		staffWeeks, err := uc.scheduleRepo.GetAllStaffWeeks(txCtx, req.TenantSlug)
		if err != nil {
			return fmt.Errorf("%w: failed to get staff availability: %v", ErrInternal, err)
		}

		lunches, err := uc.scheduleRepo.GetLunchExceptions(txCtx, req.TenantSlug, req.Date, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get lunch exceptions: %v", ErrInternal, err)
		}

		// 3.3. Активные бронирования даты с блокировкой строк (FOR UPDATE)
		filter := domain.TenantReservationsFilter{
			TenantSlug: req.TenantSlug,
			StartDate:  &req.Date,
			EndDate:    &req.Date,
		}
		reservations, err := uc.reservationRepo.GetByTenantWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 3.4. Полная проверка предложения детектором конфликтов
		index := schedule.BuildOccupancyIndex(reservations, lunches, req.Date, req.Date)
		detector := schedule.NewDetector(hours, staffWeeks, index, uc.granularity)

		proposal := schedule.Proposal{
			Service: service,
			StaffID: req.StaffID,
			Date:    req.Date,
			Start:   req.StartTime,
		}
		if err := detector.Validate(proposal); err != nil {
			return err
		}

		// 3.5. Создаем бронирование с денормализацией данных услуги
		reservation := &domain.Reservation{
			TenantSlug:      req.TenantSlug,
			ServiceID:       req.ServiceID,
			StaffID:         req.StaffID,
			CustomerName:    req.CustomerName,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			// Денормализация: история переживает переименование услуги
			ServiceName:       service.Name,
			ServicePriceMinor: service.PriceMinorUnits,
			Notes:             req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if schedule.IsConflict(err) {
			uc.logger.Warn("CreateReservation: conflict for tenant=%s, date=%s, time=%s: %v",
				req.TenantSlug, req.Date.Format(domain.DateFormat), req.StartTime, err)
		} else {
			uc.logger.Error("CreateReservation: failed for tenant=%s: %v", req.TenantSlug, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	endTime, _ := result.EndTime()
	return &Response{
		ID:                result.ID,
		TenantSlug:        result.TenantSlug,
		ServiceID:         result.ServiceID,
		StaffID:           result.StaffID,
		ReservationDate:   result.ReservationDate,
		StartTime:         result.StartTime,
		EndTime:           endTime,
		DurationMinutes:   result.DurationMinutes,
		Status:            string(result.Status),
		ServiceName:       result.ServiceName,
		ServicePriceMinor: result.ServicePriceMinor,
		CustomerName:      result.CustomerName,
		Notes:             result.Notes,
		CreatedAt:         result.CreatedAt,
		UpdatedAt:         result.UpdatedAt,
	}, nil
}
