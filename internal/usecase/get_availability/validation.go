package get_availability

import (
	"fmt"

	"github.com/dkoval/SBP-BookingService/internal/domain"
)

// MaxRangeDays ограничивает размер запрашиваемого диапазона,
// чтобы один запрос не разворачивал сетку на годы вперёд.
const MaxRangeDays = 31

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantSlug == "" {
		return fmt.Errorf("%w: tenantSlug is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.FromDate.IsZero() || req.ToDate.IsZero() {
		return fmt.Errorf("%w: date range is required", ErrInvalidInput)
	}

	if req.ToDate.Before(req.FromDate) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidDateRange)
	}

	days := int(req.ToDate.Sub(req.FromDate).Hours()/24) + 1
	if days > MaxRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidDateRange, MaxRangeDays)
	}

	if req.Granularity != 0 &&
		(req.Granularity < domain.MinSlotGranularityMinutes || req.Granularity > domain.MaxSlotGranularityMinutes) {
		return fmt.Errorf("%w: granularity must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	return nil
}
