package create_reservation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	serviceRepo "github.com/dkoval/SBP-BookingService/internal/infra/storage/service"
	"github.com/dkoval/SBP-BookingService/internal/schedule"
	"github.com/dkoval/SBP-BookingService/pkg/ptr"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

// Фейки репозиториев для тестов

type fakeReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.reservations = append(f.reservations, r)
	return r, nil
}

func (f *fakeReservationRepo) GetByTenantWithFilter(_ context.Context, filter domain.TenantReservationsFilter) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.TenantSlug != filter.TenantSlug {
			continue
		}
		if filter.StartDate != nil && r.ReservationDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && r.ReservationDate.After(*filter.EndDate) {
			continue
		}
		if !filter.IncludeInactive && !r.IsActive() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
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

// fakeTxManager выполняет функцию без реальной транзакции. Сериализация
// в тестах достигается последовательным выполнением запросов.
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

func testService() *domain.Service {
	return &domain.Service{
		ID:              1,
		TenantSlug:      "demo-salon",
		Name:            "Massage",
		DurationMinutes: 60,
		PriceMinorUnits: 500000,
		Active:          true,
	}
}

func newTestUseCase(repo *fakeReservationRepo, sched *fakeScheduleRepo) *UseCase {
	uc := NewUseCase(
		repo,
		&fakeServiceRepo{services: map[int64]*domain.Service{1: testService()}},
		sched,
		&fakeTxManager{},
		domain.DefaultSlotGranularityMinutes,
		nopLogger{},
	)
	// Фиксируем "сегодня" за неделю до даты бронирования
	uc.timeProvider = fixedTime{t: monday.AddDate(0, 0, -7)}
	return uc
}

func validRequest(start string) *Request {
	return &Request{
		TenantSlug: "demo-salon",
		ServiceID:  1,
		Date:       monday,
		StartTime:  types.TimeString(start),
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours()})

	resp, err := uc.Execute(context.Background(), validRequest("09:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	// Денормализованные данные услуги скопированы в бронирование
	assert.Equal(t, "Massage", resp.ServiceName)
	assert.Equal(t, int64(500000), resp.ServicePriceMinor)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeScheduleRepo{hours: testHours()})

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{name: "missing tenant", mutate: func(r *Request) { r.TenantSlug = "" }, wantErr: ErrInvalidInput},
		{name: "non-positive service", mutate: func(r *Request) { r.ServiceID = 0 }, wantErr: ErrInvalidInput},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }, wantErr: ErrInvalidInput},
		{name: "missing start time", mutate: func(r *Request) { r.StartTime = "" }, wantErr: ErrInvalidInput},
		{name: "bad start time format", mutate: func(r *Request) { r.StartTime = "9:00" }, wantErr: ErrInvalidInput},
		{name: "past date", mutate: func(r *Request) { r.Date = monday.AddDate(0, 0, -30) }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest("09:00")
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ConflictReasons(t *testing.T) {
	staffWeeks := map[int64]domain.StaffWeek{}
	var week domain.StaffWeek
	week[time.Monday] = &domain.StaffDay{Working: true, StartTime: "10:00", EndTime: "15:00"}
	staffWeeks[3] = week

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours(), staffWeeks: staffWeeks})

	// Существующее бронирование 10:00-11:00
	_, err := uc.Execute(context.Background(), validRequest("10:00"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{name: "unknown service", mutate: func(r *Request) { r.ServiceID = 99 }, wantErr: schedule.ErrServiceNotFound},
		{name: "unaligned start", mutate: func(r *Request) { r.StartTime = "09:10" }, wantErr: schedule.ErrInvalidInterval},
		{name: "before opening", mutate: func(r *Request) { r.StartTime = "08:00" }, wantErr: schedule.ErrOutsideOpeningHours},
		{name: "straddles closing", mutate: func(r *Request) { r.StartTime = "16:30" }, wantErr: schedule.ErrOutsideOpeningHours},
		{name: "closed day", mutate: func(r *Request) { r.Date = monday.AddDate(0, 0, 5) }, wantErr: schedule.ErrOutsideOpeningHours},
		{name: "outside staff window", mutate: func(r *Request) { r.StaffID = ptr.Ptr(int64(3)); r.StartTime = "09:00" }, wantErr: schedule.ErrOutsideStaffAvailability},
		{name: "unknown staff", mutate: func(r *Request) { r.StaffID = ptr.Ptr(int64(42)); r.StartTime = "10:00" }, wantErr: schedule.ErrOutsideStaffAvailability},
		{name: "overlaps existing", mutate: func(r *Request) { r.StartTime = "10:30" }, wantErr: schedule.ErrSlotOccupied},
		{name: "overlaps lunch", mutate: func(r *Request) { r.StartTime = "11:30" }, wantErr: schedule.ErrSlotOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest("09:00")
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours()})

	_, err := uc.Execute(context.Background(), validRequest("09:00"))
	require.NoError(t, err)

	// Встык к существующему бронированию 09:00-10:00
	_, err = uc.Execute(context.Background(), validRequest("10:00"))
	assert.NoError(t, err)
}

func TestExecute_DifferentStaffShareTime(t *testing.T) {
	staffWeeks := map[int64]domain.StaffWeek{}
	for _, id := range []int64{1, 2} {
		var week domain.StaffWeek
		week[time.Monday] = &domain.StaffDay{Working: true, StartTime: "09:00", EndTime: "17:00"}
		staffWeeks[id] = week
	}

	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours(), staffWeeks: staffWeeks})

	first := validRequest("10:00")
	first.StaffID = ptr.Ptr(int64(1))
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Другой сотрудник свободен в то же время
	second := validRequest("10:00")
	second.StaffID = ptr.Ptr(int64(2))
	_, err = uc.Execute(context.Background(), second)
	assert.NoError(t, err)

	// Тот же сотрудник — конфликт
	third := validRequest("10:00")
	third.StaffID = ptr.Ptr(int64(1))
	_, err = uc.Execute(context.Background(), third)
	assert.ErrorIs(t, err, schedule.ErrSlotOccupied)
}

// Свойство: при любом порядке поступления пересекающихся запросов принятые
// бронирования никогда не пересекаются на одном ресурсе.
func TestExecute_NoDoubleBookingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	starts := []string{
		"09:00", "09:30", "10:00", "10:30", "11:00",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00",
	}

	for iter := 0; iter < 20; iter++ {
		repo := &fakeReservationRepo{}
		uc := newTestUseCase(repo, &fakeScheduleRepo{hours: testHours()})

		shuffled := append([]string(nil), starts...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		accepted := 0
		for _, start := range shuffled {
			_, err := uc.Execute(context.Background(), validRequest(start))
			if err == nil {
				accepted++
			} else {
				require.ErrorIs(t, err, schedule.ErrSlotOccupied, "start %s", start)
			}
		}
		require.Greater(t, accepted, 0)

		// Инвариант: ни одна пара принятых бронирований не пересекается
		for i, a := range repo.reservations {
			aEnd, err := a.EndTime()
			require.NoError(t, err)
			for _, b := range repo.reservations[i+1:] {
				bEnd, err := b.EndTime()
				require.NoError(t, err)
				overlap := a.StartTime.IsBefore(bEnd) && b.StartTime.IsBefore(aEnd)
				assert.False(t, overlap, "reservations %s-%s and %s-%s overlap", a.StartTime, aEnd, b.StartTime, bEnd)
			}
		}
	}
}
