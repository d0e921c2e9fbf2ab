package get_availability

import (
	"context"
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, tenantSlug string, id int64) (*domain.Service, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantReservationsFilter) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetOpeningHours(ctx context.Context, tenantSlug string) (domain.OpeningHours, error)
	GetLunchExceptions(ctx context.Context, tenantSlug string, from, to time.Time) ([]*domain.LunchException, error)
	GetAllStaffWeeks(ctx context.Context, tenantSlug string) (map[int64]domain.StaffWeek, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
