package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	serviceRepo "github.com/dkoval/SBP-BookingService/internal/infra/storage/service"
	"github.com/dkoval/SBP-BookingService/internal/schedule"
)

// UseCase use case для расчёта сетки доступности
type UseCase struct {
	serviceRepo     ServiceRepository
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:     serviceRepo,
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет расчёт сетки доступности для диапазона дат.
// Снимок конфигурации и занятости читается в одной read-only транзакции,
// чтобы сетка была согласованной на весь диапазон.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: tenant=%s, service=%d, staff=%v, period=%s to %s",
		req.TenantSlug, req.ServiceID, req.StaffID,
		req.FromDate.Format(domain.DateFormat), req.ToDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	granularity := req.Granularity
	if granularity == 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}

	// Снимок данных для расчёта
	var (
		service      *domain.Service
		hours        domain.OpeningHours
		staffWeeks   map[int64]domain.StaffWeek
		reservations []*domain.Reservation
		lunches      []*domain.LunchException
	)

	// 2. Читаем конфигурацию и занятость одним согласованным снимком
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		service, err = uc.serviceRepo.GetByID(txCtx, req.TenantSlug, req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		hours, err = uc.scheduleRepo.GetOpeningHours(txCtx, req.TenantSlug)
		if err != nil {
			return fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
		}

		staffWeeks, err = uc.scheduleRepo.GetAllStaffWeeks(txCtx, req.TenantSlug)
		if err != nil {
			return fmt.Errorf("%w: failed to get staff availability: %v", ErrInternal, err)
		}

		filter := domain.TenantReservationsFilter{
			TenantSlug: req.TenantSlug,
			StartDate:  &req.FromDate,
			EndDate:    &req.ToDate,
		}
		reservations, err = uc.reservationRepo.GetByTenantWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		lunches, err = uc.scheduleRepo.GetLunchExceptions(txCtx, req.TenantSlug, req.FromDate, req.ToDate)
		if err != nil {
			return fmt.Errorf("%w: failed to get lunch exceptions: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found for tenant=%s", req.ServiceID, req.TenantSlug)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to load snapshot for tenant=%s: %v", req.TenantSlug, err)
		return nil, err
	}

	if !service.Active {
		uc.logger.Warn("GetAvailability: service id=%d is inactive for tenant=%s", req.ServiceID, req.TenantSlug)
		return nil, ErrServiceNotFound
	}

	// 3. Строим единую сетку диапазона
	grid, err := schedule.BuildGrid(hours, granularity, req.FromDate, req.ToDate)
	if err != nil {
		uc.logger.Warn("GetAvailability: failed to build grid for tenant=%s: %v", req.TenantSlug, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}

	// 4. Индексируем занятость и валидируем каждую ячейку
	index := schedule.BuildOccupancyIndex(reservations, lunches, req.FromDate, req.ToDate)
	detector := schedule.NewDetector(hours, staffWeeks, index, granularity)

	resp := &Response{
		TenantSlug:  req.TenantSlug,
		ServiceID:   req.ServiceID,
		StaffID:     req.StaffID,
		Granularity: granularity,
		Rows:        grid.Rows,
		Days:        make([]DayAvailability, 0, len(grid.Days)),
	}

	available := 0
	for _, day := range grid.Days {
		dayResp := DayAvailability{
			Date:   day.Date,
			Closed: !day.Schedule.IsOpen(),
			Slots:  make([]Slot, 0, len(grid.Rows)),
		}
		if day.Schedule.IsOpen() {
			dayResp.OpensAt = day.Schedule.OpensAt
			dayResp.ClosesAt = day.Schedule.ClosesAt
		}

		for _, row := range grid.Rows {
			slot := Slot{StartTime: row}
			if end, err := row.AddMinutes(granularity); err == nil {
				slot.EndTime = end
			}

			proposal := schedule.Proposal{
				Service: service,
				StaffID: req.StaffID,
				Date:    day.Date,
				Start:   row,
			}
			slot.Available = detector.Validate(proposal) == nil
			if slot.Available {
				available++
			}

			dayResp.Slots = append(dayResp.Slots, slot)
		}

		resp.Days = append(resp.Days, dayResp)
	}

	uc.logger.Info("GetAvailability: computed grid for tenant=%s: %d days, %d rows, %d available slots",
		req.TenantSlug, len(resp.Days), len(resp.Rows), available)

	return resp, nil
}
