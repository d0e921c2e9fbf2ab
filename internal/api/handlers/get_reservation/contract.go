package get_reservation

import (
	"context"

	"github.com/dkoval/SBP-BookingService/internal/service/reservations/models"
)

type ReservationsService interface {
	GetByID(ctx context.Context, tenantSlug string, id int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
