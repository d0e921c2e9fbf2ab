package catalog

import (
	"context"

	"github.com/dkoval/SBP-BookingService/internal/domain"
)

// ServiceRepository репозиторий каталога услуг
type ServiceRepository interface {
	ListByTenant(ctx context.Context, tenantSlug string, onlyActive bool) ([]*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
