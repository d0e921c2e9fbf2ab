package schedule

import (
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// StaffFilter narrows grid slots to those a specific staff member can
// service. A nil *StaffFilter means "no staff filter" (any staff): only the
// tenant's opening hours constrain the slot. The predicate is pure and safe
// to call concurrently.
type StaffFilter struct {
	StaffID int64
	Week    domain.StaffWeek
}

// NewStaffFilter builds a filter for one staff member's weekly windows.
func NewStaffFilter(staffID int64, week domain.StaffWeek) *StaffFilter {
	return &StaffFilter{StaffID: staffID, Week: week}
}

// Allows reports whether the interval [start, end) on the given date lies
// fully inside the staff member's working window for that weekday. No record
// for the weekday, or Working=false, means not working.
func (f *StaffFilter) Allows(date time.Time, start, end types.TimeString) bool {
	if f == nil {
		return true
	}
	day := f.Week.Day(date.Weekday())
	if day == nil {
		return false
	}
	return day.Contains(start, end)
}

// SlotAvailable is the composed availability predicate over opening hours
// and the optional staff filter:
//
//	withinOpeningHours(date, slot) AND (filter == nil OR withinStaffWindow(date, slot))
func SlotAvailable(hours domain.OpeningHours, filter *StaffFilter, date time.Time, start, end types.TimeString) bool {
	if !hours.ForDate(date).Contains(start, end) {
		return false
	}
	return filter.Allows(date, start, end)
}
