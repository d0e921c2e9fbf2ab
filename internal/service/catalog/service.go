package catalog

import (
	"context"
	"fmt"

	"github.com/dkoval/SBP-BookingService/internal/service/catalog/models"
)

// Service сервис каталога услуг тенанта
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// ListServices возвращает услуги тенанта. По умолчанию только активные;
// includeInactive добавляет снятые с продажи услуги.
func (s *Service) ListServices(ctx context.Context, tenantSlug string, includeInactive bool) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching services for tenant=%s, includeInactive=%t", tenantSlug, includeInactive)

	services, err := s.serviceRepo.ListByTenant(ctx, tenantSlug, !includeInactive)
	if err != nil {
		s.logger.Error("ListServices: repository error for tenant=%s: %v", tenantSlug, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: successfully fetched %d services for tenant=%s", len(services), tenantSlug)
	return models.FromDomainServiceList(services), nil
}
