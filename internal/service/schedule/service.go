package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	scheduleRepo "github.com/dkoval/SBP-BookingService/internal/infra/storage/schedule"
	"github.com/dkoval/SBP-BookingService/internal/service/schedule/models"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// Service сервис для управления расписаниями тенанта:
// часами работы, доступностью сотрудников и исключениями обеда.
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule получает полное расписание тенанта: часы работы, доступность
// всех сотрудников и исключения обеда за период [from, to].
func (s *Service) GetSchedule(ctx context.Context, tenantSlug string, from, to time.Time) (*models.TenantScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for tenant=%s, period=%s to %s",
		tenantSlug, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if to.Before(from) {
		s.logger.Warn("GetSchedule: invalid period for tenant=%s", tenantSlug)
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	var resp models.TenantScheduleResponse
	resp.TenantSlug = tenantSlug

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		hours, err := s.scheduleRepo.GetOpeningHours(ctx, tenantSlug)
		if err != nil {
			return fmt.Errorf("get opening hours: %w", err)
		}
		resp.OpeningHours = *models.FromDomainOpeningHours(hours)

		weeks, err := s.scheduleRepo.GetAllStaffWeeks(ctx, tenantSlug)
		if err != nil {
			return fmt.Errorf("get staff weeks: %w", err)
		}

		staffIDs := make([]int64, 0, len(weeks))
		for staffID := range weeks {
			staffIDs = append(staffIDs, staffID)
		}
		sort.Slice(staffIDs, func(i, j int) bool { return staffIDs[i] < staffIDs[j] })

		resp.Staff = make([]models.StaffWeekResponse, 0, len(staffIDs))
		for _, staffID := range staffIDs {
			resp.Staff = append(resp.Staff, *models.FromDomainStaffWeek(staffID, weeks[staffID]))
		}

		exceptions, err := s.scheduleRepo.GetLunchExceptions(ctx, tenantSlug, from, to)
		if err != nil {
			return fmt.Errorf("get lunch exceptions: %w", err)
		}

		resp.LunchExceptions = make([]models.LunchExceptionResponse, 0, len(exceptions))
		for _, exc := range exceptions {
			resp.LunchExceptions = append(resp.LunchExceptions, *models.FromDomainLunchException(exc))
		}

		return nil
	})

	if err != nil {
		s.logger.Error("GetSchedule: failed for tenant=%s: %v", tenantSlug, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: successfully fetched schedule for tenant=%s, staff=%d, exceptions=%d",
		tenantSlug, len(resp.Staff), len(resp.LunchExceptions))
	return &resp, nil
}

// ReplaceOpeningHours полностью заменяет недельное расписание часов работы.
// Удаление и вставка выполняются в одной транзакции.
func (s *Service) ReplaceOpeningHours(ctx context.Context, tenantSlug string, req *models.UpdateOpeningHoursRequest) (*models.OpeningHoursResponse, error) {
	s.logger.Info("ReplaceOpeningHours: updating opening hours for tenant=%s", tenantSlug)

	hours, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("ReplaceOpeningHours: invalid schedule for tenant=%s: %v", tenantSlug, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.scheduleRepo.ReplaceOpeningHours(ctx, tenantSlug, hours)
	})

	if err != nil {
		s.logger.Error("ReplaceOpeningHours: repository error for tenant=%s: %v", tenantSlug, err)
		return nil, fmt.Errorf("%w: ReplaceOpeningHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceOpeningHours: successfully updated opening hours for tenant=%s", tenantSlug)
	return models.FromDomainOpeningHours(hours), nil
}

// ReplaceStaffWeek полностью заменяет недельную доступность сотрудника
func (s *Service) ReplaceStaffWeek(ctx context.Context, tenantSlug string, staffID int64, req *models.UpdateStaffWeekRequest) (*models.StaffWeekResponse, error) {
	s.logger.Info("ReplaceStaffWeek: updating availability for tenant=%s, staff=%d", tenantSlug, staffID)

	if staffID <= 0 {
		s.logger.Warn("ReplaceStaffWeek: invalid staff id=%d for tenant=%s", staffID, tenantSlug)
		return nil, fmt.Errorf("%w: invalid staff id", ErrInvalidInput)
	}

	week, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("ReplaceStaffWeek: invalid availability for tenant=%s, staff=%d: %v", tenantSlug, staffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var stored domain.StaffWeek
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.scheduleRepo.ReplaceStaffWeek(ctx, tenantSlug, staffID, week); err != nil {
			return err
		}
		// Ответ строим по сохранённому состоянию, а не по входным данным
		stored, err = s.scheduleRepo.GetStaffWeek(ctx, tenantSlug, staffID)
		return err
	})

	if err != nil {
		s.logger.Error("ReplaceStaffWeek: repository error for tenant=%s, staff=%d: %v", tenantSlug, staffID, err)
		return nil, fmt.Errorf("%w: ReplaceStaffWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceStaffWeek: successfully updated availability for tenant=%s, staff=%d", tenantSlug, staffID)
	return models.FromDomainStaffWeek(staffID, stored), nil
}

// UpsertLunchException устанавливает обед на конкретную дату,
// заменяя дефолтный перерыв 12:00-13:00.
func (s *Service) UpsertLunchException(ctx context.Context, tenantSlug string, req *models.UpsertLunchExceptionRequest) (*models.LunchExceptionResponse, error) {
	s.logger.Info("UpsertLunchException: setting lunch for tenant=%s, date=%s", tenantSlug, req.Date)

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("UpsertLunchException: invalid date=%s for tenant=%s", req.Date, tenantSlug)
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		s.logger.Warn("UpsertLunchException: invalid start time=%s for tenant=%s", req.StartTime, tenantSlug)
		return nil, fmt.Errorf("%w: invalid start time", ErrInvalidInput)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		s.logger.Warn("UpsertLunchException: invalid end time=%s for tenant=%s", req.EndTime, tenantSlug)
		return nil, fmt.Errorf("%w: invalid end time", ErrInvalidInput)
	}

	if !startTime.IsBefore(endTime) {
		s.logger.Warn("UpsertLunchException: start=%s is not before end=%s for tenant=%s", startTime, endTime, tenantSlug)
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidTimeRange)
	}

	exc := &domain.LunchException{
		TenantSlug: tenantSlug,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
	}

	saved, err := s.scheduleRepo.UpsertLunchException(ctx, exc)
	if err != nil {
		s.logger.Error("UpsertLunchException: repository error for tenant=%s, date=%s: %v", tenantSlug, req.Date, err)
		return nil, fmt.Errorf("%w: UpsertLunchException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertLunchException: successfully set lunch for tenant=%s, date=%s", tenantSlug, req.Date)
	return models.FromDomainLunchException(saved), nil
}

// DeleteLunchException удаляет исключение обеда на дату,
// возвращая дефолтный перерыв.
func (s *Service) DeleteLunchException(ctx context.Context, tenantSlug string, req *models.DeleteLunchExceptionRequest) error {
	s.logger.Info("DeleteLunchException: removing lunch override for tenant=%s, date=%s", tenantSlug, req.Date)

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("DeleteLunchException: invalid date=%s for tenant=%s", req.Date, tenantSlug)
		return fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	if err := s.scheduleRepo.DeleteLunchException(ctx, tenantSlug, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrLunchExceptionNotFound) {
			s.logger.Warn("DeleteLunchException: no override for tenant=%s, date=%s", tenantSlug, req.Date)
			return ErrLunchExceptionNotFound
		}
		s.logger.Error("DeleteLunchException: repository error for tenant=%s, date=%s: %v", tenantSlug, req.Date, err)
		return fmt.Errorf("%w: DeleteLunchException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteLunchException: successfully removed override for tenant=%s, date=%s", tenantSlug, req.Date)
	return nil
}
