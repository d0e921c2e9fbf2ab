package create_reservation

import (
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	createReservation "github.com/dkoval/SBP-BookingService/internal/usecase/create_reservation"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ServiceID    int64   `json:"serviceId"`
	StaffID      *int64  `json:"staffId,omitempty"`
	Date         string  `json:"date"`      // "2025-10-15"
	StartTime    string  `json:"startTime"` // "10:00"
	CustomerName *string `json:"customerName,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                int64   `json:"id"`
	TenantSlug        string  `json:"tenantSlug"`
	ServiceID         int64   `json:"serviceId"`
	StaffID           *int64  `json:"staffId,omitempty"`
	Date              string  `json:"date"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	DurationMinutes   int     `json:"durationMinutes"`
	Status            string  `json:"status"`
	ServiceName       string  `json:"serviceName"`
	ServicePriceMinor int64   `json:"servicePriceMinor"`
	CustomerName      *string `json:"customerName,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(tenantSlug string) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		TenantSlug:   tenantSlug,
		ServiceID:    r.ServiceID,
		StaffID:      r.StaffID,
		Date:         date,
		StartTime:    startTime,
		CustomerName: r.CustomerName,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:                resp.ID,
		TenantSlug:        resp.TenantSlug,
		ServiceID:         resp.ServiceID,
		StaffID:           resp.StaffID,
		Date:              resp.ReservationDate.Format(domain.DateFormat),
		StartTime:         resp.StartTime.String(),
		EndTime:           resp.EndTime.String(),
		DurationMinutes:   resp.DurationMinutes,
		Status:            resp.Status,
		ServiceName:       resp.ServiceName,
		ServicePriceMinor: resp.ServicePriceMinor,
		CustomerName:      resp.CustomerName,
		Notes:             resp.Notes,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
