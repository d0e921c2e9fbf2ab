package schedule

import (
	"context"
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetOpeningHours(ctx context.Context, tenantSlug string) (domain.OpeningHours, error)
	ReplaceOpeningHours(ctx context.Context, tenantSlug string, hours domain.OpeningHours) error
	GetLunchExceptions(ctx context.Context, tenantSlug string, from, to time.Time) ([]*domain.LunchException, error)
	UpsertLunchException(ctx context.Context, exc *domain.LunchException) (*domain.LunchException, error)
	DeleteLunchException(ctx context.Context, tenantSlug string, date time.Time) error
	GetStaffWeek(ctx context.Context, tenantSlug string, staffID int64) (domain.StaffWeek, error)
	GetAllStaffWeeks(ctx context.Context, tenantSlug string) (map[int64]domain.StaffWeek, error)
	ReplaceStaffWeek(ctx context.Context, tenantSlug string, staffID int64, week domain.StaffWeek) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
