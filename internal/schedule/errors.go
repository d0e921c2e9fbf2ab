package schedule

import "errors"

// Conflict reasons. These are business-rule failures, expected during normal
// usage, and are always returned as typed errors rather than panics.
var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("schedule: service not found")

	// ErrInvalidInterval возвращается при некорректном интервале
	// (start >= end, либо начало не кратно шагу сетки)
	ErrInvalidInterval = errors.New("schedule: invalid interval")

	// ErrOutsideOpeningHours возвращается, когда интервал выходит за рабочие часы тенанта
	ErrOutsideOpeningHours = errors.New("schedule: outside opening hours")

	// ErrOutsideStaffAvailability возвращается, когда интервал выходит за рабочее окно сотрудника
	ErrOutsideStaffAvailability = errors.New("schedule: outside staff availability")

	// ErrSlotOccupied возвращается, когда интервал пересекается с существующим
	// бронированием или обеденным перерывом
	ErrSlotOccupied = errors.New("schedule: slot occupied")
)

// IsConflict reports whether err is one of the typed conflict reasons.
func IsConflict(err error) bool {
	return errors.Is(err, ErrServiceNotFound) ||
		errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrOutsideOpeningHours) ||
		errors.Is(err, ErrOutsideStaffAvailability) ||
		errors.Is(err, ErrSlotOccupied)
}
