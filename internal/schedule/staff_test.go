package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dkoval/SBP-BookingService/internal/domain"
)

func staffWeek(days map[time.Weekday]domain.StaffDay) domain.StaffWeek {
	var week domain.StaffWeek
	for d, day := range days {
		copied := day
		week[d] = &copied
	}
	return week
}

func TestStaffFilter_Allows(t *testing.T) {
	week := staffWeek(map[time.Weekday]domain.StaffDay{
		time.Monday: {Working: true, StartTime: "10:00", EndTime: "15:00"},
		time.Friday: {Working: false, StartTime: "09:00", EndTime: "17:00"},
	})
	filter := NewStaffFilter(7, week)

	friday := monday.AddDate(0, 0, 4)
	tuesday := monday.AddDate(0, 0, 1)

	tests := []struct {
		name  string
		date  time.Time
		start string
		end   string
		want  bool
	}{
		{name: "inside window", date: monday, start: "10:00", end: "11:00", want: true},
		{name: "window boundaries inclusive-exclusive", date: monday, start: "14:00", end: "15:00", want: true},
		{name: "starts before window", date: monday, start: "09:30", end: "10:30", want: false},
		{name: "ends after window", date: monday, start: "14:30", end: "15:30", want: false},
		{name: "working=false weekday", date: friday, start: "10:00", end: "11:00", want: false},
		{name: "no record means not working", date: tuesday, start: "10:00", end: "11:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.Allows(tt.date, domainTime(tt.start), domainTime(tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStaffFilter_NilMeansAnyStaff(t *testing.T) {
	var filter *StaffFilter
	assert.True(t, filter.Allows(monday, "03:00", "23:00"))
}

func TestSlotAvailable_ComposesHoursAndStaff(t *testing.T) {
	hours := weekHours(openDay("09:00", "17:00"))
	week := staffWeek(map[time.Weekday]domain.StaffDay{
		time.Monday: {Working: true, StartTime: "10:00", EndTime: "15:00"},
	})
	filter := NewStaffFilter(7, week)

	// Тенант открыт дольше, чем работает сотрудник: окно сотрудника решает
	assert.True(t, SlotAvailable(hours, filter, monday, "10:00", "11:00"))
	assert.False(t, SlotAvailable(hours, filter, monday, "09:00", "10:00"))
	assert.False(t, SlotAvailable(hours, filter, monday, "14:30", "15:30"))

	// Без фильтра по сотруднику ограничивают только рабочие часы
	assert.True(t, SlotAvailable(hours, nil, monday, "09:00", "10:00"))
	assert.False(t, SlotAvailable(hours, nil, monday, "16:30", "17:30"))
}
