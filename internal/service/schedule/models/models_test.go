package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateOpeningHoursRequest_ToDomain(t *testing.T) {
	req := &UpdateOpeningHoursRequest{
		Days: map[string]DayScheduleRequest{
			"monday":   {OpensAt: "09:00", ClosesAt: "18:00"},
			"saturday": {OpensAt: "10:00", ClosesAt: "14:00"},
			"sunday":   {Closed: true},
		},
	}

	hours, err := req.ToDomain()
	require.NoError(t, err)

	monday := hours[time.Monday]
	assert.False(t, monday.Closed)
	assert.Equal(t, "09:00", monday.OpensAt.String())
	assert.Equal(t, "18:00", monday.ClosesAt.String())

	saturday := hours[time.Saturday]
	assert.Equal(t, "10:00", saturday.OpensAt.String())

	// Явно закрытый и просто отсутствующий дни эквивалентны
	assert.True(t, hours[time.Sunday].Closed)
	assert.True(t, hours[time.Tuesday].Closed)
}

func TestUpdateOpeningHoursRequest_ToDomain_Invalid(t *testing.T) {
	tests := []struct {
		name string
		days map[string]DayScheduleRequest
	}{
		{
			name: "unknown weekday key",
			days: map[string]DayScheduleRequest{"someday": {OpensAt: "09:00", ClosesAt: "18:00"}},
		},
		{
			name: "malformed time",
			days: map[string]DayScheduleRequest{"monday": {OpensAt: "9am", ClosesAt: "18:00"}},
		},
		{
			name: "opens after closes",
			days: map[string]DayScheduleRequest{"monday": {OpensAt: "18:00", ClosesAt: "09:00"}},
		},
		{
			name: "opens equals closes",
			days: map[string]DayScheduleRequest{"monday": {OpensAt: "09:00", ClosesAt: "09:00"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &UpdateOpeningHoursRequest{Days: tt.days}
			_, err := req.ToDomain()
			assert.ErrorIs(t, err, ErrInvalidDaySchedule)
		})
	}
}

func TestUpdateStaffWeekRequest_ToDomain(t *testing.T) {
	req := &UpdateStaffWeekRequest{
		Days: map[string]StaffDayRequest{
			"monday":  {Working: true, StartTime: "10:00", EndTime: "16:00"},
			"tuesday": {Working: false},
		},
	}

	week, err := req.ToDomain()
	require.NoError(t, err)

	require.NotNil(t, week[time.Monday])
	assert.True(t, week[time.Monday].Working)
	assert.Equal(t, "10:00", week[time.Monday].StartTime.String())

	require.NotNil(t, week[time.Tuesday])
	assert.False(t, week[time.Tuesday].Working)

	// Отсутствующий день остаётся nil: правило для него не задано
	assert.Nil(t, week[time.Wednesday])
}

func TestUpdateStaffWeekRequest_ToDomain_Invalid(t *testing.T) {
	req := &UpdateStaffWeekRequest{
		Days: map[string]StaffDayRequest{
			"monday": {Working: true, StartTime: "16:00", EndTime: "10:00"},
		},
	}

	_, err := req.ToDomain()
	assert.ErrorIs(t, err, ErrInvalidDaySchedule)
}
