package reschedule_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	reservationRepo "github.com/dkoval/SBP-BookingService/internal/infra/storage/reservation"
	serviceRepo "github.com/dkoval/SBP-BookingService/internal/infra/storage/service"
	"github.com/dkoval/SBP-BookingService/internal/schedule"
	"github.com/dkoval/SBP-BookingService/pkg/ptr"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

// Фейки репозиториев для тестов

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetByTenantWithFilter(_ context.Context, filter domain.TenantReservationsFilter) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.TenantSlug != filter.TenantSlug || !r.IsActive() {
			continue
		}
		if filter.StartDate != nil && r.ReservationDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && r.ReservationDate.After(*filter.EndDate) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) UpdateSchedule(_ context.Context, id int64, date time.Time, startTime types.TimeString, staffID *int64) error {
	r, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	r.ReservationDate = date
	r.StartTime = startTime
	r.StaffID = staffID
	return nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, tenantSlug string, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok || svc.TenantSlug != tenantSlug {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeScheduleRepo struct {
	hours      domain.OpeningHours
	staffWeeks map[int64]domain.StaffWeek
	lunches    []*domain.LunchException
}

func (f *fakeScheduleRepo) GetOpeningHours(_ context.Context, _ string) (domain.OpeningHours, error) {
	return f.hours, nil
}

func (f *fakeScheduleRepo) GetLunchExceptions(_ context.Context, _ string, _, _ time.Time) ([]*domain.LunchException, error) {
	return f.lunches, nil
}

func (f *fakeScheduleRepo) GetAllStaffWeeks(_ context.Context, _ string) (map[int64]domain.StaffWeek, error) {
	return f.staffWeeks, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testHours() domain.OpeningHours {
	var hours domain.OpeningHours
	for i := range hours {
		hours[i] = domain.DaySchedule{Closed: true}
	}
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		hours[wd] = domain.DaySchedule{OpensAt: "09:00", ClosesAt: "17:00"}
	}
	return hours
}

func testReservation(id int64, start string, staffID *int64) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		TenantSlug:      "demo-salon",
		ServiceID:       1,
		StaffID:         staffID,
		ReservationDate: monday,
		StartTime:       types.TimeString(start),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Massage",
	}
}

func newTestUseCase(repo *fakeReservationRepo, sched *fakeScheduleRepo) *UseCase {
	uc := NewUseCase(
		repo,
		&fakeServiceRepo{services: map[int64]*domain.Service{1: {
			ID:              1,
			TenantSlug:      "demo-salon",
			Name:            "Massage",
			DurationMinutes: 60,
			Active:          true,
		}}},
		sched,
		&fakeTxManager{},
		domain.DefaultSlotGranularityMinutes,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{t: monday.AddDate(0, 0, -7)}
	return uc
}

func TestExecute_MoveWithinSameDay(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		42: testReservation(42, "10:00", nil),
	}}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours()})

	// Перенос на полчаса вперёд пересекается со старым интервалом,
	// но собственное бронирование исключается из проверки
	resp, err := uc.Execute(context.Background(), &Request{
		TenantSlug:    "demo-salon",
		ReservationID: 42,
		StartTime:     ptr.Ptr(types.TimeString("10:30")),
	})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
	// Дата не менялась
	assert.True(t, resp.ReservationDate.Equal(monday))
	assert.Equal(t, types.TimeString("10:30"), repo.reservations[42].StartTime)
}

func TestExecute_MoveToAnotherDate(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		42: testReservation(42, "10:00", nil),
	}}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours()})

	tuesday := monday.AddDate(0, 0, 1)
	resp, err := uc.Execute(context.Background(), &Request{
		TenantSlug:    "demo-salon",
		ReservationID: 42,
		Date:          &tuesday,
	})
	require.NoError(t, err)

	assert.True(t, resp.ReservationDate.Equal(tuesday))
	// Время сохранено со старого бронирования
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
}

func TestExecute_ReassignStaff(t *testing.T) {
	staffWeeks := map[int64]domain.StaffWeek{}
	var week domain.StaffWeek
	week[time.Monday] = &domain.StaffDay{Working: true, StartTime: "09:00", EndTime: "17:00"}
	staffWeeks[2] = week

	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		42: testReservation(42, "10:00", ptr.Ptr(int64(1))),
	}}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours(), staffWeeks: staffWeeks})

	resp, err := uc.Execute(context.Background(), &Request{
		TenantSlug:    "demo-salon",
		ReservationID: 42,
		StaffID:       ptr.Ptr(int64(2)),
		StaffProvided: true,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, int64(2), *resp.StaffID)
}

func TestExecute_ClearStaff(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		42: testReservation(42, "10:00", ptr.Ptr(int64(1))),
	}}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours()})

	resp, err := uc.Execute(context.Background(), &Request{
		TenantSlug:    "demo-salon",
		ReservationID: 42,
		StaffID:       nil,
		StaffProvided: true,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.StaffID)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{}}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours()})

	_, err := uc.Execute(context.Background(), &Request{
		TenantSlug:    "demo-salon",
		ReservationID: 99,
		StartTime:     ptr.Ptr(types.TimeString("11:00")),
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_ForeignTenantNotFound(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		42: testReservation(42, "10:00", nil),
	}}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours()})

	_, err := uc.Execute(context.Background(), &Request{
		TenantSlug:    "other-salon",
		ReservationID: 42,
		StartTime:     ptr.Ptr(types.TimeString("11:00")),
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_CancelledCannotBeRescheduled(t *testing.T) {
	cancelled := testReservation(42, "10:00", nil)
	cancelled.Status = domain.StatusCancelled
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{42: cancelled}}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours()})

	_, err := uc.Execute(context.Background(), &Request{
		TenantSlug:    "demo-salon",
		ReservationID: 42,
		StartTime:     ptr.Ptr(types.TimeString("11:00")),
	})
	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestExecute_ConflictWithOtherReservation(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		42: testReservation(42, "09:00", nil),
		43: testReservation(43, "11:00", nil),
	}}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours()})

	// Чужое бронирование 11:00-12:00 конфликтует
	_, err := uc.Execute(context.Background(), &Request{
		TenantSlug:    "demo-salon",
		ReservationID: 42,
		StartTime:     ptr.Ptr(types.TimeString("11:30")),
	})
	assert.ErrorIs(t, err, schedule.ErrSlotOccupied)

	// Исходное бронирование не изменилось
	assert.Equal(t, types.TimeString("09:00"), repo.reservations[42].StartTime)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeScheduleRepo{hours: testHours()})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "missing tenant", req: &Request{ReservationID: 42, StartTime: ptr.Ptr(types.TimeString("11:00"))}},
		{name: "non-positive id", req: &Request{TenantSlug: "demo-salon", StartTime: ptr.Ptr(types.TimeString("11:00"))}},
		{name: "no fields to change", req: &Request{TenantSlug: "demo-salon", ReservationID: 42}},
		{name: "bad time format", req: &Request{TenantSlug: "demo-salon", ReservationID: 42, StartTime: ptr.Ptr(types.TimeString("25:00"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_PastDateRejected(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		42: testReservation(42, "10:00", nil),
	}}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours()})

	past := monday.AddDate(0, 0, -14)
	_, err := uc.Execute(context.Background(), &Request{
		TenantSlug:    "demo-salon",
		ReservationID: 42,
		Date:          &past,
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
