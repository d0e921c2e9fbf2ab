package schedule

import (
	"fmt"
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// Proposal is a booking request to validate: the implied end time is
// start + service duration.
type Proposal struct {
	Service *domain.Service
	StaffID *int64
	Date    time.Time
	Start   types.TimeString
}

// Detector validates proposals against a consistent snapshot of a tenant's
// configuration and occupancy. Every call site that needs "is this slot
// free" goes through Validate so the slot-span math cannot drift between
// screens.
type Detector struct {
	Hours       domain.OpeningHours
	StaffWeeks  map[int64]domain.StaffWeek
	Index       *OccupancyIndex
	Granularity int
}

// NewDetector builds a detector over a snapshot.
func NewDetector(hours domain.OpeningHours, staffWeeks map[int64]domain.StaffWeek, index *OccupancyIndex, granularity int) *Detector {
	if granularity <= 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}
	return &Detector{
		Hours:       hours,
		StaffWeeks:  staffWeeks,
		Index:       index,
		Granularity: granularity,
	}
}

// Validate checks a proposal and returns nil or one of the typed conflict
// reasons. Checks short-circuit on the first failure; the order only affects
// error specificity.
func (d *Detector) Validate(p Proposal) error {
	return d.ValidateExcluding(p, 0)
}

// ValidateExcluding is Validate with the proposal's own reservation excluded
// from the occupancy check. Used by reschedule, which must not conflict with
// the interval it is vacating.
func (d *Detector) ValidateExcluding(p Proposal, excludeReservationID int64) error {
	// 1. Услуга должна существовать и быть активной
	if p.Service == nil || !p.Service.Active {
		return ErrServiceNotFound
	}

	// 2. Валидация интервала
	if err := p.Start.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if !p.Start.MultipleOf(d.Granularity) {
		return fmt.Errorf("%w: start %s is not aligned to %d-minute grid", ErrInvalidInterval, p.Start, d.Granularity)
	}
	if p.Service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: non-positive service duration", ErrInvalidInterval)
	}
	end, err := p.Start.AddMinutes(p.Service.DurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: interval extends past end of day", ErrInvalidInterval)
	}

	// 3. Интервал целиком внутри рабочих часов дня
	if !d.Hours.ForDate(p.Date).Contains(p.Start, end) {
		return ErrOutsideOpeningHours
	}

	// 4. Интервал целиком внутри рабочего окна сотрудника (если указан)
	if p.StaffID != nil {
		week, ok := d.StaffWeeks[*p.StaffID]
		if !ok {
			return ErrOutsideStaffAvailability
		}
		if !NewStaffFilter(*p.StaffID, week).Allows(p.Date, p.Start, end) {
			return ErrOutsideStaffAvailability
		}
	}

	// 5. Пересечение с занятыми интервалами. Проверяем пересечение интервалов,
	// а не попадание в одну строку сетки: услуга из нескольких слотов может
	// накрыть чужое бронирование серединой интервала.
	if d.Index != nil {
		if o := d.Index.FirstConflict(p.Date, p.Start, end, p.StaffID, excludeReservationID); o != nil {
			if o.Lunch {
				return fmt.Errorf("%w: lunch break %s-%s", ErrSlotOccupied, o.Start, o.End)
			}
			return fmt.Errorf("%w: reservation %d occupies %s-%s", ErrSlotOccupied, o.Reservation.ID, o.Start, o.End)
		}
	}

	return nil
}
