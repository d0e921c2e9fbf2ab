package models

import (
	"errors"
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

var (
	// ErrInvalidDaySchedule возвращается при некорректном дневном расписании
	ErrInvalidDaySchedule = errors.New("invalid day schedule")
)

// Порядок дней в запросах/ответах недельного расписания.
// Совпадает с индексацией time.Weekday (воскресенье первым).
var weekdayKeys = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Request модели

// DayScheduleRequest дневное окно работы тенанта
type DayScheduleRequest struct {
	Closed   bool   `json:"closed,omitempty"`
	OpensAt  string `json:"opensAt,omitempty"`  // "09:00"
	ClosesAt string `json:"closesAt,omitempty"` // "18:00"
}

// UpdateOpeningHoursRequest запрос на полную замену недельного расписания.
// Отсутствующий день считается закрытым.
type UpdateOpeningHoursRequest struct {
	Days map[string]DayScheduleRequest `json:"days"`
}

// ToDomain конвертирует запрос в domain.OpeningHours с валидацией
func (r *UpdateOpeningHoursRequest) ToDomain() (domain.OpeningHours, error) {
	var hours domain.OpeningHours
	for i := range hours {
		hours[i] = domain.DaySchedule{Closed: true}
	}

	for key, day := range r.Days {
		weekday, ok := weekdayIndex(key)
		if !ok {
			return hours, ErrInvalidDaySchedule
		}

		if day.Closed {
			hours[weekday] = domain.DaySchedule{Closed: true}
			continue
		}

		opensAt, err := types.NewTimeStringFromString(day.OpensAt)
		if err != nil {
			return hours, ErrInvalidDaySchedule
		}
		closesAt, err := types.NewTimeStringFromString(day.ClosesAt)
		if err != nil {
			return hours, ErrInvalidDaySchedule
		}
		if !opensAt.IsBefore(closesAt) {
			return hours, ErrInvalidDaySchedule
		}

		hours[weekday] = domain.DaySchedule{OpensAt: opensAt, ClosesAt: closesAt}
	}

	return hours, nil
}

// StaffDayRequest дневное окно доступности сотрудника
type StaffDayRequest struct {
	Working   bool   `json:"working"`
	StartTime string `json:"startTime,omitempty"` // "10:00"
	EndTime   string `json:"endTime,omitempty"`   // "16:00"
}

// UpdateStaffWeekRequest запрос на полную замену недельной доступности сотрудника.
// Отсутствующий день означает "не работает".
type UpdateStaffWeekRequest struct {
	Days map[string]StaffDayRequest `json:"days"`
}

// ToDomain конвертирует запрос в domain.StaffWeek с валидацией
func (r *UpdateStaffWeekRequest) ToDomain() (domain.StaffWeek, error) {
	var week domain.StaffWeek

	for key, day := range r.Days {
		weekday, ok := weekdayIndex(key)
		if !ok {
			return week, ErrInvalidDaySchedule
		}

		if !day.Working {
			week[weekday] = &domain.StaffDay{Working: false}
			continue
		}

		startTime, err := types.NewTimeStringFromString(day.StartTime)
		if err != nil {
			return week, ErrInvalidDaySchedule
		}
		endTime, err := types.NewTimeStringFromString(day.EndTime)
		if err != nil {
			return week, ErrInvalidDaySchedule
		}
		if !startTime.IsBefore(endTime) {
			return week, ErrInvalidDaySchedule
		}

		week[weekday] = &domain.StaffDay{Working: true, StartTime: startTime, EndTime: endTime}
	}

	return week, nil
}

// UpsertLunchExceptionRequest запрос на установку обеда на конкретную дату
type UpsertLunchExceptionRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "13:00"
	EndTime   string `json:"endTime"`   // "14:00"
}

// DeleteLunchExceptionRequest запрос на возврат дефолтного обеда на дату
type DeleteLunchExceptionRequest struct {
	Date string `json:"date"` // "2025-10-15"
}

// Response модели

// DayScheduleResponse дневное окно работы в ответе
type DayScheduleResponse struct {
	Closed   bool   `json:"closed"`
	OpensAt  string `json:"opensAt,omitempty"`
	ClosesAt string `json:"closesAt,omitempty"`
}

// OpeningHoursResponse недельное расписание тенанта
type OpeningHoursResponse struct {
	Days map[string]DayScheduleResponse `json:"days"`
}

// FromDomainOpeningHours конвертирует domain.OpeningHours в DTO
func FromDomainOpeningHours(hours domain.OpeningHours) *OpeningHoursResponse {
	resp := &OpeningHoursResponse{Days: make(map[string]DayScheduleResponse, len(weekdayKeys))}

	for weekday, key := range weekdayKeys {
		day := hours[weekday]
		if !day.IsOpen() {
			resp.Days[key] = DayScheduleResponse{Closed: true}
			continue
		}
		resp.Days[key] = DayScheduleResponse{
			OpensAt:  day.OpensAt.String(),
			ClosesAt: day.ClosesAt.String(),
		}
	}

	return resp
}

// StaffDayResponse дневное окно сотрудника в ответе
type StaffDayResponse struct {
	Working   bool   `json:"working"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// StaffWeekResponse недельная доступность сотрудника
type StaffWeekResponse struct {
	StaffID int64                       `json:"staffId"`
	Days    map[string]StaffDayResponse `json:"days"`
}

// FromDomainStaffWeek конвертирует domain.StaffWeek в DTO
func FromDomainStaffWeek(staffID int64, week domain.StaffWeek) *StaffWeekResponse {
	resp := &StaffWeekResponse{
		StaffID: staffID,
		Days:    make(map[string]StaffDayResponse, len(weekdayKeys)),
	}

	for weekday, key := range weekdayKeys {
		day := week[weekday]
		if day == nil || !day.Working {
			resp.Days[key] = StaffDayResponse{Working: false}
			continue
		}
		resp.Days[key] = StaffDayResponse{
			Working:   true,
			StartTime: day.StartTime.String(),
			EndTime:   day.EndTime.String(),
		}
	}

	return resp
}

// LunchExceptionResponse исключение обеда в ответе
type LunchExceptionResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainLunchException конвертирует domain.LunchException в DTO
func FromDomainLunchException(exc *domain.LunchException) *LunchExceptionResponse {
	if exc == nil {
		return nil
	}

	return &LunchExceptionResponse{
		ID:        exc.ID,
		Date:      exc.Date.Format(domain.DateFormat),
		StartTime: exc.StartTime.String(),
		EndTime:   exc.EndTime.String(),
		CreatedAt: exc.CreatedAt,
		UpdatedAt: exc.UpdatedAt,
	}
}

// TenantScheduleResponse полное расписание тенанта: часы работы,
// доступность сотрудников и исключения обеда за запрошенный период.
type TenantScheduleResponse struct {
	TenantSlug      string                   `json:"tenantSlug"`
	OpeningHours    OpeningHoursResponse     `json:"openingHours"`
	Staff           []StaffWeekResponse      `json:"staff"`
	LunchExceptions []LunchExceptionResponse `json:"lunchExceptions"`
}

func weekdayIndex(key string) (int, bool) {
	for i, k := range weekdayKeys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}
