package get_tenant_reservations

import (
	"net/url"
	"strconv"
	"time"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/internal/service/reservations/models"
)

// ParseQuery разбирает query-параметры списка бронирований тенанта.
// Поддерживаются from, to (YYYY-MM-DD), staffId, status и includeInactive.
func ParseQuery(tenantSlug string, query url.Values) (*models.GetTenantReservationsRequest, error) {
	req := &models.GetTenantReservationsRequest{
		TenantSlug: tenantSlug,
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if raw := query.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	if raw := query.Get("status"); raw != "" {
		status := raw
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
