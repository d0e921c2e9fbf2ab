package domain

import "github.com/dkoval/SBP-BookingService/pkg/types"

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 30

	// Дефолтный обеденный перерыв (будние дни, если нет LunchException)
	DefaultLunchStart types.TimeString = "12:00"
	DefaultLunchEnd   types.TimeString = "13:00"
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240

	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих слоты
// Используется при фильтрации бронирований для расчёта доступности
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
}

// ActiveStatuses список статусов, занимающих слоты
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
