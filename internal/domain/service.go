package domain

import "time"

// Service represents a bookable service offered by a tenant.
type Service struct {
	ID              int64
	TenantSlug      string
	Name            string
	DurationMinutes int
	PriceMinorUnits int64
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotSpan returns the number of contiguous grid slots a booking of this
// service consumes for the given slot granularity.
func (s *Service) SlotSpan(granularityMinutes int) int {
	if granularityMinutes <= 0 {
		return 0
	}
	return (s.DurationMinutes + granularityMinutes - 1) / granularityMinutes
}
