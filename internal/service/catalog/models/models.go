package models

import (
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
)

// ServiceResponse услуга каталога в ответе API
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceMinorUnits int64  `json:"priceMinorUnits"`
	Active          bool   `json:"active"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ServiceListResponse список услуг тенанта
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}

	for _, svc := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			PriceMinorUnits: svc.PriceMinorUnits,
			Active:          svc.Active,
			CreatedAt:       svc.CreatedAt.Format(time.RFC3339),
			UpdatedAt:       svc.UpdatedAt.Format(time.RFC3339),
		})
	}

	return resp
}
