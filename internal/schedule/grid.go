package schedule

import (
	"fmt"
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// Grid is a unified slot grid for a visible date range. All days share one
// ordered row sequence, starting at the earliest opening time across the
// range and ending at the latest closing time. Days where a row falls
// outside that day's own hours are rendered as unavailable rather than
// omitted, so callers can draw one row per timestamp.
type Grid struct {
	Granularity int              // шаг сетки в минутах
	Days        []GridDay        // дни диапазона по порядку
	Rows        []types.TimeString // времена начала строк, общие для всех дней
}

// GridDay is one date of the range together with that day's own schedule.
type GridDay struct {
	Date     time.Time
	Schedule domain.DaySchedule
}

// BuildGrid builds the unified grid for [from, to] (dates inclusive).
// A weekday with Closed=true contributes no bound to the min/max computation
// but still appears in Days with every row unavailable. A closing time with
// non-zero minutes is covered by rounding the upper bound up: rows are
// generated strictly before the latest closing time, so a trailing partial
// hour is still represented by at least one row.
func BuildGrid(hours domain.OpeningHours, granularity int, from, to time.Time) (*Grid, error) {
	if granularity <= 0 {
		return nil, fmt.Errorf("%w: granularity must be positive", ErrInvalidInterval)
	}
	from = dateOnly(from)
	to = dateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before range start", ErrInvalidInterval)
	}

	grid := &Grid{Granularity: granularity}

	var (
		minOpen  types.TimeString
		maxClose types.TimeString
		anyOpen  bool
	)

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		day := hours.ForDate(date)
		grid.Days = append(grid.Days, GridDay{Date: date, Schedule: day})

		if !day.IsOpen() {
			continue
		}
		if !anyOpen {
			minOpen, maxClose = day.OpensAt, day.ClosesAt
			anyOpen = true
			continue
		}
		if day.OpensAt.IsBefore(minOpen) {
			minOpen = day.OpensAt
		}
		if day.ClosesAt.IsAfter(maxClose) {
			maxClose = day.ClosesAt
		}
	}

	// Все дни закрыты: диапазон остаётся в ответе, но строк нет
	if !anyOpen {
		return grid, nil
	}

	for row := minOpen; row.IsBefore(maxClose); {
		grid.Rows = append(grid.Rows, row)

		next, err := row.AddMinutes(granularity)
		if err != nil {
			// Уперлись в конец суток
			break
		}
		row = next
	}

	return grid, nil
}

// dateOnly truncates a timestamp to its date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
