package domain

import (
	"time"

	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// DaySchedule describes a tenant's opening window for a single weekday.
// When Closed is true, OpensAt/ClosesAt are ignored.
type DaySchedule struct {
	Closed   bool
	OpensAt  types.TimeString
	ClosesAt types.TimeString
}

// IsOpen returns true if the day has a usable opening window.
func (d DaySchedule) IsOpen() bool {
	return !d.Closed && !d.OpensAt.IsZero() && !d.ClosesAt.IsZero()
}

// Contains reports whether [start, end) lies fully inside the opening window.
func (d DaySchedule) Contains(start, end types.TimeString) bool {
	if !d.IsOpen() {
		return false
	}
	return !start.IsBefore(d.OpensAt) && !end.IsAfter(d.ClosesAt)
}

// OpeningHours is a tenant's weekly schedule, indexed by time.Weekday
// (Sunday == 0). Missing configuration for a weekday means closed.
type OpeningHours [7]DaySchedule

// Day returns the schedule for the given weekday.
func (h OpeningHours) Day(weekday time.Weekday) DaySchedule {
	return h[weekday]
}

// ForDate returns the schedule for the weekday of the given date.
func (h OpeningHours) ForDate(date time.Time) DaySchedule {
	return h[date.Weekday()]
}

// LunchException is a per-date override of the default midday break.
// At most one exception exists per (tenant, date); its presence suppresses
// the default lunch block and substitutes its own interval.
type LunchException struct {
	ID         int64
	TenantSlug string
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StaffDay describes one staff member's working window for a weekday.
type StaffDay struct {
	Working   bool
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Contains reports whether [start, end) lies fully inside the working window.
func (d StaffDay) Contains(start, end types.TimeString) bool {
	if !d.Working {
		return false
	}
	return !start.IsBefore(d.StartTime) && !end.IsAfter(d.EndTime)
}

// StaffWeek is a staff member's weekly availability, indexed by time.Weekday.
// A nil entry means no record for that weekday, i.e. not working.
type StaffWeek [7]*StaffDay

// Day returns the window for the given weekday, or nil if none exists.
func (w StaffWeek) Day(weekday time.Weekday) *StaffDay {
	return w[weekday]
}
