package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// Понедельник 13 октября 2025
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func openDay(opens, closes types.TimeString) domain.DaySchedule {
	return domain.DaySchedule{OpensAt: opens, ClosesAt: closes}
}

func closedDay() domain.DaySchedule {
	return domain.DaySchedule{Closed: true}
}

func weekHours(day domain.DaySchedule) domain.OpeningHours {
	var hours domain.OpeningHours
	for i := range hours {
		hours[i] = day
	}
	return hours
}

func TestBuildGrid_SingleDayRowCount(t *testing.T) {
	tests := []struct {
		name     string
		opens    types.TimeString
		closes   types.TimeString
		wantRows int
		first    types.TimeString
		last     types.TimeString
	}{
		{name: "full hours 09-17", opens: "09:00", closes: "17:00", wantRows: 16, first: "09:00", last: "16:30"},
		{name: "partial closing hour is represented", opens: "09:00", closes: "17:30", wantRows: 17, first: "09:00", last: "17:00"},
		{name: "short day", opens: "10:00", closes: "12:00", wantRows: 4, first: "10:00", last: "11:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := BuildGrid(weekHours(openDay(tt.opens, tt.closes)), 30, monday, monday)
			require.NoError(t, err)

			require.Len(t, grid.Rows, tt.wantRows)
			assert.Equal(t, tt.first, grid.Rows[0])
			assert.Equal(t, tt.last, grid.Rows[len(grid.Rows)-1])
			require.Len(t, grid.Days, 1)
		})
	}
}

func TestBuildGrid_UnifiedBoundsAcrossDays(t *testing.T) {
	// Пн 08:00-12:00, Вт 10:00-18:00: общая сетка 08:00..17:30
	var hours domain.OpeningHours
	hours[time.Monday] = openDay("08:00", "12:00")
	hours[time.Tuesday] = openDay("10:00", "18:00")
	for _, d := range []time.Weekday{time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		hours[d] = closedDay()
	}

	grid, err := BuildGrid(hours, 30, monday, monday.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, grid.Days, 2)
	require.NotEmpty(t, grid.Rows)
	assert.Equal(t, types.TimeString("08:00"), grid.Rows[0])
	assert.Equal(t, types.TimeString("17:30"), grid.Rows[len(grid.Rows)-1])
	assert.Len(t, grid.Rows, 20)
}

func TestBuildGrid_ClosedDayContributesNoBounds(t *testing.T) {
	// Закрытый вторник не расширяет сетку, но остаётся в диапазоне
	var hours domain.OpeningHours
	hours[time.Monday] = openDay("09:00", "17:00")
	hours[time.Tuesday] = closedDay()
	for _, d := range []time.Weekday{time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		hours[d] = closedDay()
	}

	grid, err := BuildGrid(hours, 30, monday, monday.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, grid.Days, 2)
	assert.Len(t, grid.Rows, 16)
	assert.True(t, grid.Days[1].Schedule.Closed)
	// Ни одна строка не попадает в окно закрытого дня
	for _, row := range grid.Rows {
		end, err := row.AddMinutes(30)
		require.NoError(t, err)
		assert.False(t, grid.Days[1].Schedule.Contains(row, end))
	}
}

func TestBuildGrid_AllDaysClosed(t *testing.T) {
	grid, err := BuildGrid(weekHours(closedDay()), 30, monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)

	assert.Len(t, grid.Days, 7)
	assert.Empty(t, grid.Rows)
}

func TestBuildGrid_InvalidInput(t *testing.T) {
	_, err := BuildGrid(weekHours(openDay("09:00", "17:00")), 0, monday, monday)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = BuildGrid(weekHours(openDay("09:00", "17:00")), 30, monday, monday.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
