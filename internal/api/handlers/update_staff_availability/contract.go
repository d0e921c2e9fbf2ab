package update_staff_availability

import (
	"context"

	"github.com/dkoval/SBP-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceStaffWeek(ctx context.Context, tenantSlug string, staffID int64, req *models.UpdateStaffWeekRequest) (*models.StaffWeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
