package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/pkg/ptr"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

func domainTime(s string) types.TimeString {
	return types.TimeString(s)
}

func makeReservation(id int64, date time.Time, start string, durationMinutes int, staffID *int64) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		TenantSlug:      "demo-salon",
		ServiceID:       1,
		StaffID:         staffID,
		ReservationDate: date,
		StartTime:       domainTime(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func TestOccupancyIndex_OccupantAt(t *testing.T) {
	res := makeReservation(1, monday, "10:00", 60, nil)
	idx := BuildOccupancyIndex([]*domain.Reservation{res}, nil, monday, monday)

	tests := []struct {
		name string
		slot string
		want bool
	}{
		{name: "slot at start", slot: "10:00", want: true},
		{name: "slot inside interval", slot: "10:30", want: true},
		{name: "slot at end is free (half-open)", slot: "11:00", want: false},
		{name: "slot before", slot: "09:30", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.OccupantAt(monday, domainTime(tt.slot))
			if tt.want {
				require.NotNil(t, got)
				assert.Equal(t, res.ID, got.Reservation.ID)
			} else if got != nil {
				// Строка может быть занята только дефолтным обедом
				assert.True(t, got.Lunch)
			}
		})
	}
}

func TestOccupancyIndex_CancelledReservationsExcluded(t *testing.T) {
	res := makeReservation(1, monday, "10:00", 60, nil)
	res.Status = domain.StatusCancelled

	idx := BuildOccupancyIndex([]*domain.Reservation{res}, nil, monday, monday)
	assert.Nil(t, idx.FirstConflict(monday, "10:00", "11:00", nil, 0))
}

func TestOccupancyIndex_DefaultLunchOnWeekdays(t *testing.T) {
	idx := BuildOccupancyIndex(nil, nil, monday, monday.AddDate(0, 0, 6))

	// Будний день: 12:00 занят дефолтным обедом
	o := idx.OccupantAt(monday, "12:00")
	require.NotNil(t, o)
	assert.True(t, o.Lunch)
	assert.Equal(t, domain.DefaultLunchStart, o.Start)
	assert.Equal(t, domain.DefaultLunchEnd, o.End)

	// Обед полуоткрытый: 13:00 свободно
	assert.Nil(t, idx.OccupantAt(monday, "13:00"))

	// Суббота и воскресенье без дефолтного обеда
	saturday := monday.AddDate(0, 0, 5)
	sunday := monday.AddDate(0, 0, 6)
	assert.Nil(t, idx.OccupantAt(saturday, "12:00"))
	assert.Nil(t, idx.OccupantAt(sunday, "12:00"))
}

func TestOccupancyIndex_ExplicitLunchSuppressesDefault(t *testing.T) {
	exception := &domain.LunchException{
		TenantSlug: "demo-salon",
		Date:       monday,
		StartTime:  "13:00",
		EndTime:    "14:00",
	}

	idx := BuildOccupancyIndex(nil, []*domain.LunchException{exception}, monday, monday)

	// Дефолтный 12:00 освобождён, перенесённый 13:00 занят
	assert.Nil(t, idx.OccupantAt(monday, "12:00"))
	o := idx.OccupantAt(monday, "13:00")
	require.NotNil(t, o)
	assert.True(t, o.Lunch)
}

func TestOccupancyIndex_FirstConflict_StaffScoping(t *testing.T) {
	staff1 := ptr.Ptr(int64(1))
	staff2 := ptr.Ptr(int64(2))

	reservations := []*domain.Reservation{
		makeReservation(1, monday, "10:00", 60, staff1),
		makeReservation(2, monday, "15:00", 60, nil),
	}
	idx := BuildOccupancyIndex(reservations, nil, monday, monday)

	// Тот же сотрудник конфликтует
	require.NotNil(t, idx.FirstConflict(monday, "10:30", "11:30", staff1, 0))
	// Другой сотрудник в то же время свободен
	assert.Nil(t, idx.FirstConflict(monday, "10:30", "11:30", staff2, 0))
	// Staff-less предложение не конфликтует с бронированием сотрудника
	assert.Nil(t, idx.FirstConflict(monday, "10:30", "11:30", nil, 0))
	// Staff-less против staff-less конфликтует
	require.NotNil(t, idx.FirstConflict(monday, "15:30", "16:30", nil, 0))
	// Сотрудник против staff-less бронирования свободен
	assert.Nil(t, idx.FirstConflict(monday, "15:30", "16:30", staff1, 0))
}

func TestOccupancyIndex_FirstConflict_LunchBlocksEveryone(t *testing.T) {
	idx := BuildOccupancyIndex(nil, nil, monday, monday)

	assert.NotNil(t, idx.FirstConflict(monday, "12:00", "13:00", nil, 0))
	assert.NotNil(t, idx.FirstConflict(monday, "12:30", "13:30", ptr.Ptr(int64(5)), 0))
	// Вплотную к обеду с обеих сторон — свободно
	assert.Nil(t, idx.FirstConflict(monday, "11:00", "12:00", nil, 0))
	assert.Nil(t, idx.FirstConflict(monday, "13:00", "14:00", nil, 0))
}

func TestOccupancyIndex_FirstConflict_HalfOpenBoundaries(t *testing.T) {
	idx := BuildOccupancyIndex([]*domain.Reservation{
		makeReservation(1, monday, "10:00", 60, nil),
	}, nil, monday, monday)

	// Встык до и после существующего бронирования — не конфликт
	assert.Nil(t, idx.FirstConflict(monday, "09:00", "10:00", nil, 0))
	assert.Nil(t, idx.FirstConflict(monday, "11:00", "11:30", nil, 0))
	// Любое реальное пересечение — конфликт
	assert.NotNil(t, idx.FirstConflict(monday, "09:30", "10:30", nil, 0))
	assert.NotNil(t, idx.FirstConflict(monday, "10:30", "11:30", nil, 0))
	// Длинный интервал, накрывающий бронирование целиком
	assert.NotNil(t, idx.FirstConflict(monday, "09:00", "11:30", nil, 0))
}

func TestOccupancyIndex_FirstConflict_ExcludesOwnReservation(t *testing.T) {
	idx := BuildOccupancyIndex([]*domain.Reservation{
		makeReservation(42, monday, "10:00", 60, nil),
	}, nil, monday, monday)

	// Перенос на пересечение с собственным старым интервалом допустим
	assert.Nil(t, idx.FirstConflict(monday, "10:30", "11:30", nil, 42))
	// Но чужие бронирования по-прежнему конфликтуют
	assert.NotNil(t, idx.FirstConflict(monday, "10:30", "11:30", nil, 7))
}

func TestOccupancyIndex_ScopedByDate(t *testing.T) {
	idx := BuildOccupancyIndex([]*domain.Reservation{
		makeReservation(1, monday, "10:00", 60, nil),
	}, nil, monday, monday.AddDate(0, 0, 1))

	tuesday := monday.AddDate(0, 0, 1)
	assert.Nil(t, idx.FirstConflict(tuesday, "10:00", "11:00", nil, 0))
}
