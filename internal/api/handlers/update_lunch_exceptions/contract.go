package update_lunch_exceptions

import (
	"context"

	"github.com/dkoval/SBP-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertLunchException(ctx context.Context, tenantSlug string, req *models.UpsertLunchExceptionRequest) (*models.LunchExceptionResponse, error)
	DeleteLunchException(ctx context.Context, tenantSlug string, req *models.DeleteLunchExceptionRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
