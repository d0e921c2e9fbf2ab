package get_schedule

import (
	"context"
	"time"

	"github.com/dkoval/SBP-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, tenantSlug string, from, to time.Time) (*models.TenantScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
