package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/pkg/ptr"
)

func massage() *domain.Service {
	return &domain.Service{
		ID:              1,
		TenantSlug:      "demo-salon",
		Name:            "Massage",
		DurationMinutes: 60,
		PriceMinorUnits: 500000,
		Active:          true,
	}
}

func detectorFor(reservations []*domain.Reservation, staffWeeks map[int64]domain.StaffWeek) *Detector {
	idx := BuildOccupancyIndex(reservations, nil, monday, monday)
	return NewDetector(weekHours(openDay("09:00", "17:00")), staffWeeks, idx, 30)
}

func TestDetector_Validate_ServiceChecks(t *testing.T) {
	d := detectorFor(nil, nil)

	err := d.Validate(Proposal{Service: nil, Date: monday, Start: "09:00"})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	inactive := massage()
	inactive.Active = false
	err = d.Validate(Proposal{Service: inactive, Date: monday, Start: "09:00"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDetector_Validate_InvalidInterval(t *testing.T) {
	d := detectorFor(nil, nil)

	tests := []struct {
		name     string
		start    string
		duration int
	}{
		{name: "unaligned start", start: "09:10", duration: 60},
		{name: "bad format", start: "9:00", duration: 60},
		{name: "zero duration", start: "09:00", duration: 0},
		{name: "interval past end of day", start: "23:30", duration: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := massage()
			svc.DurationMinutes = tt.duration
			err := d.Validate(Proposal{Service: svc, Date: monday, Start: domainTime(tt.start)})
			assert.ErrorIs(t, err, ErrInvalidInterval)
		})
	}
}

func TestDetector_Validate_OpeningHours(t *testing.T) {
	d := detectorFor(nil, nil)

	tests := []struct {
		name    string
		start   string
		wantErr error
	}{
		{name: "first slot of the day", start: "09:00"},
		{name: "last slot that fits", start: "16:00"},
		{name: "before opening", start: "08:00", wantErr: ErrOutsideOpeningHours},
		{name: "straddles closing", start: "16:30", wantErr: ErrOutsideOpeningHours},
		{name: "after closing", start: "17:00", wantErr: ErrOutsideOpeningHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Validate(Proposal{Service: massage(), Date: monday, Start: domainTime(tt.start)})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDetector_Validate_ClosedDay(t *testing.T) {
	idx := BuildOccupancyIndex(nil, nil, monday, monday)
	d := NewDetector(weekHours(closedDay()), nil, idx, 30)

	err := d.Validate(Proposal{Service: massage(), Date: monday, Start: "10:00"})
	assert.ErrorIs(t, err, ErrOutsideOpeningHours)
}

func TestDetector_Validate_StaffWindowContainment(t *testing.T) {
	staffID := ptr.Ptr(int64(3))
	weeks := map[int64]domain.StaffWeek{
		3: staffWeek(map[time.Weekday]domain.StaffDay{
			time.Monday: {Working: true, StartTime: "10:00", EndTime: "15:00"},
		}),
	}
	d := detectorFor(nil, weeks)

	tests := []struct {
		name    string
		start   string
		wantErr error
	}{
		{name: "inside staff window", start: "10:00"},
		{name: "last fitting slot", start: "14:00"},
		{name: "tenant open but staff not started", start: "09:00", wantErr: ErrOutsideStaffAvailability},
		{name: "straddles staff window end", start: "14:30", wantErr: ErrOutsideStaffAvailability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Validate(Proposal{Service: massage(), StaffID: staffID, Date: monday, Start: domainTime(tt.start)})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	// Сотрудник без единой записи в расписании недоступен
	err := d.Validate(Proposal{Service: massage(), StaffID: ptr.Ptr(int64(99)), Date: monday, Start: "10:00"})
	assert.ErrorIs(t, err, ErrOutsideStaffAvailability)
}

// Сценарий из бизнес-требований: тенант открыт Пн 09:00-17:00, шаг 30 минут,
// услуга 60 минут, без фильтра по сотруднику, существует подтверждённое
// бронирование 10:00-11:00.
func TestDetector_Validate_MultiSlotOverlapScenario(t *testing.T) {
	existing := makeReservation(1, monday, "10:00", 60, nil)
	idx := BuildOccupancyIndex([]*domain.Reservation{existing}, nil, monday, monday)
	d := NewDetector(weekHours(openDay("09:00", "17:00")), nil, idx, 30)

	expected := map[string]bool{
		"09:00": true,  // 09:00-10:00 встык перед бронированием
		"09:30": false, // 09:30-10:30 пересекает 10:00-11:00
		"10:00": false,
		"10:30": false,
		"11:00": true, // встык после бронирования
		"11:30": false, // обед: 11:30-12:30 пересекает 12:00-13:00
	}

	for start, wantOK := range expected {
		err := d.Validate(Proposal{Service: massage(), Date: monday, Start: domainTime(start)})
		if wantOK {
			assert.NoError(t, err, "slot %s", start)
		} else {
			assert.Error(t, err, "slot %s", start)
		}
	}
}

func TestDetector_Validate_BackToBackReservations(t *testing.T) {
	existing := makeReservation(1, monday, "09:00", 60, nil)
	idx := BuildOccupancyIndex([]*domain.Reservation{existing}, nil, monday, monday)
	d := NewDetector(weekHours(openDay("09:00", "17:00")), nil, idx, 30)

	// Новое бронирование, начинающееся ровно в момент окончания старого
	err := d.Validate(Proposal{Service: massage(), Date: monday, Start: "10:00"})
	assert.NoError(t, err)
}

func TestDetector_ValidateExcluding_RescheduleSelfExclusion(t *testing.T) {
	existing := makeReservation(42, monday, "10:00", 60, nil)
	idx := BuildOccupancyIndex([]*domain.Reservation{existing}, nil, monday, monday)
	d := NewDetector(weekHours(openDay("09:00", "17:00")), nil, idx, 30)

	// Перенос на полчаса вперёд пересекается со старым интервалом — допустимо
	require.NoError(t, d.ValidateExcluding(Proposal{Service: massage(), Date: monday, Start: "10:30"}, 42))
	// Без исключения собственного бронирования это был бы конфликт
	assert.ErrorIs(t, d.Validate(Proposal{Service: massage(), Date: monday, Start: "10:30"}), ErrSlotOccupied)
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(ErrSlotOccupied))
	assert.True(t, IsConflict(ErrOutsideOpeningHours))
	assert.False(t, IsConflict(assert.AnError))
	assert.False(t, IsConflict(nil))
}
