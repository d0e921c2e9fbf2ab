package schedule

import (
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// Occupant is one occupied interval on a date: either an active reservation
// or a lunch block (synthetic, no reservation and no staff).
type Occupant struct {
	Reservation *domain.Reservation // nil для обеденного перерыва
	StaffID     *int64
	Start       types.TimeString
	End         types.TimeString
	Lunch       bool
}

// OccupancyIndex indexes occupied intervals by date so repeated slot queries
// scan only same-day entries instead of the full reservation set. It is a
// snapshot: rebuilt from storage before each availability computation or
// validation, never mutated concurrently.
type OccupancyIndex struct {
	byDate map[string][]Occupant
}

// BuildOccupancyIndex builds the index for [from, to] (dates inclusive) from
// the tenant's reservations and lunch exceptions.
//
// Only active (pending/confirmed) reservations occupy slots. For every
// weekday (Mon-Fri) date without an explicit LunchException a default
// 12:00-13:00 block is synthesized; an explicit exception for the date
// suppresses the default and substitutes its own interval.
func BuildOccupancyIndex(reservations []*domain.Reservation, lunches []*domain.LunchException, from, to time.Time) *OccupancyIndex {
	idx := &OccupancyIndex{byDate: make(map[string][]Occupant)}

	lunchByDate := make(map[string]*domain.LunchException, len(lunches))
	for _, l := range lunches {
		lunchByDate[dateKey(l.Date)] = l
	}

	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		end, err := r.EndTime()
		if err != nil {
			// Бронирование с некорректным интервалом не индексируем
			continue
		}
		key := dateKey(r.ReservationDate)
		idx.byDate[key] = append(idx.byDate[key], Occupant{
			Reservation: r,
			StaffID:     r.StaffID,
			Start:       r.StartTime,
			End:         end,
		})
	}

	for date := dateOnly(from); !date.After(dateOnly(to)); date = date.AddDate(0, 0, 1) {
		key := dateKey(date)

		if l, ok := lunchByDate[key]; ok {
			idx.byDate[key] = append(idx.byDate[key], Occupant{
				Start: l.StartTime,
				End:   l.EndTime,
				Lunch: true,
			})
			continue
		}

		if isBusinessWeekday(date.Weekday()) {
			idx.byDate[key] = append(idx.byDate[key], Occupant{
				Start: domain.DefaultLunchStart,
				End:   domain.DefaultLunchEnd,
				Lunch: true,
			})
		}
	}

	return idx
}

// OccupantAt returns the occupant whose [Start, End) interval contains the
// slot start, if any. Half-open semantics: an occupant ending exactly at
// slotStart does not occupy that slot.
func (idx *OccupancyIndex) OccupantAt(date time.Time, slotStart types.TimeString) *Occupant {
	for i, o := range idx.byDate[dateKey(date)] {
		if !slotStart.IsBefore(o.Start) && slotStart.IsBefore(o.End) {
			return &idx.byDate[dateKey(date)][i]
		}
	}
	return nil
}

// FirstConflict returns the first occupant overlapping [start, end) on the
// given date that competes for the same resource as the proposal, or nil.
//
// Resource rules: a lunch block is a tenant-wide break and conflicts with
// every proposal; reservations conflict only when they share the same staff
// member, or when both the occupant and the proposal are staff-less.
// excludeReservationID (0 = none) skips the proposal's own previous interval
// during a reschedule.
func (idx *OccupancyIndex) FirstConflict(date time.Time, start, end types.TimeString, staffID *int64, excludeReservationID int64) *Occupant {
	entries := idx.byDate[dateKey(date)]
	for i := range entries {
		o := &entries[i]

		if o.Reservation != nil && excludeReservationID != 0 && o.Reservation.ID == excludeReservationID {
			continue
		}
		if !o.Lunch && !sameResource(o.StaffID, staffID) {
			continue
		}
		// Пересечение интервалов со строгими неравенствами:
		// граничащие интервалы (конец == начало) не конфликтуют
		if o.Start.IsBefore(end) && start.IsBefore(o.End) {
			return o
		}
	}
	return nil
}

// sameResource reports whether two reservations compete for the same
// resource: the same staff member, or both staff-less.
func sameResource(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// isBusinessWeekday reports whether the default lunch rule applies (Mon-Fri).
func isBusinessWeekday(d time.Weekday) bool {
	return d != time.Saturday && d != time.Sunday
}

func dateKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}
