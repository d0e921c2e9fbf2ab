package update_schedule

import (
	"context"

	"github.com/dkoval/SBP-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceOpeningHours(ctx context.Context, tenantSlug string, req *models.UpdateOpeningHoursRequest) (*models.OpeningHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
