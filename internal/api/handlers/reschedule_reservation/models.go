package reschedule_reservation

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	rescheduleReservation "github.com/dkoval/SBP-BookingService/internal/usecase/reschedule_reservation"
	"github.com/dkoval/SBP-BookingService/pkg/ptr"
	"github.com/dkoval/SBP-BookingService/pkg/types"
)

// RescheduleRequest HTTP request model. Все поля опциональны; опущенные
// сохраняют текущие значения бронирования. staffId хранится как RawMessage,
// чтобы отличать отсутствие поля от явного null ("снять сотрудника").
type RescheduleRequest struct {
	Date      *string         `json:"date,omitempty"`      // "2025-10-15"
	StartTime *string         `json:"startTime,omitempty"` // "10:00"
	StaffID   json.RawMessage `json:"staffId,omitempty"`
}

var jsonNull = []byte("null")

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(tenantSlug string, reservationID int64) (*rescheduleReservation.Request, error) {
	req := &rescheduleReservation.Request{
		TenantSlug:    tenantSlug,
		ReservationID: reservationID,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	if len(r.StaffID) > 0 {
		req.StaffProvided = true
		if !bytes.Equal(bytes.TrimSpace(r.StaffID), jsonNull) {
			var staffID int64
			if err := json.Unmarshal(r.StaffID, &staffID); err != nil {
				return nil, err
			}
			req.StaffID = ptr.Ptr(staffID)
		}
	}

	return req, nil
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

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleReservation.Response) *ReservationResponse {
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
