package get_availability

import (
	"github.com/dkoval/SBP-BookingService/internal/domain"
	getAvailability "github.com/dkoval/SBP-BookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TenantSlug  string            `json:"tenantSlug"`
	ServiceID   int64             `json:"serviceId"`
	StaffID     *int64            `json:"staffId,omitempty"`
	Granularity int               `json:"granularityMinutes"`
	Days        []DayAvailability `json:"days"`
}

// DayAvailability один день сетки
type DayAvailability struct {
	Date     string `json:"date"` // "2025-10-15"
	Closed   bool   `json:"closed"`
	OpensAt  string `json:"opensAt,omitempty"`
	ClosesAt string `json:"closesAt,omitempty"`
	Slots    []Slot `json:"slots"`
}

// Slot одна ячейка сетки
type Slot struct {
	Start     string `json:"start"` // "10:00"
	End       string `json:"end"`   // "10:30"
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		TenantSlug:  resp.TenantSlug,
		ServiceID:   resp.ServiceID,
		StaffID:     resp.StaffID,
		Granularity: resp.Granularity,
		Days:        make([]DayAvailability, 0, len(resp.Days)),
	}

	for _, day := range resp.Days {
		d := DayAvailability{
			Date:   day.Date.Format(domain.DateFormat),
			Closed: day.Closed,
			Slots:  make([]Slot, 0, len(day.Slots)),
		}
		if !day.Closed {
			d.OpensAt = day.OpensAt.String()
			d.ClosesAt = day.ClosesAt.String()
		}
		for _, slot := range day.Slots {
			d.Slots = append(d.Slots, Slot{
				Start:     slot.StartTime.String(),
				End:       slot.EndTime.String(),
				Available: slot.Available,
			})
		}
		out.Days = append(out.Days, d)
	}

	return out
}
