package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/pkg/dbmetrics"
	"github.com/dkoval/SBP-BookingService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"tenant_slug",
	"name",
	"duration_minutes",
	"price_minor_units",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с каталогом услуг тенанта
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу тенанта по ID.
// Услуга чужого тенанта считается несуществующей.
func (r *Repository) GetByID(ctx context.Context, tenantSlug string, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"tenant_slug": tenantSlug}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.TenantSlug,
		&svc.Name,
		&svc.DurationMinutes,
		&svc.PriceMinorUnits,
		&svc.Active,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return &svc, nil
}

// ListByTenant получает все услуги тенанта.
// При onlyActive возвращаются только активные услуги.
func (r *Repository) ListByTenant(ctx context.Context, tenantSlug string, onlyActive bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"tenant_slug": tenantSlug}).
		OrderBy("name ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var svc domain.Service

		err := rows.Scan(
			&svc.ID,
			&svc.TenantSlug,
			&svc.Name,
			&svc.DurationMinutes,
			&svc.PriceMinorUnits,
			&svc.Active,
			&svc.CreatedAt,
			&svc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByTenant - scan row: %v", ErrScanRow, err)
		}

		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
