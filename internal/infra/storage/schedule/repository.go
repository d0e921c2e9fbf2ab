package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dkoval/SBP-BookingService/internal/domain"
	"github.com/dkoval/SBP-BookingService/pkg/dbmetrics"
	"github.com/dkoval/SBP-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с расписаниями тенанта:
// часы работы, доступность сотрудников и исключения обеда.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOpeningHours получает недельное расписание часов работы тенанта.
// Дни без записи в БД считаются закрытыми.
func (r *Repository) GetOpeningHours(ctx context.Context, tenantSlug string) (domain.OpeningHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var hours domain.OpeningHours
	for i := range hours {
		hours[i] = domain.DaySchedule{Closed: true}
	}

	query, args, err := psqlbuilder.Select("weekday", "closed", "opens_at", "closes_at").
		From("opening_hours").
		Where(squirrel.Eq{"tenant_slug": tenantSlug}).
		ToSql()

	if err != nil {
		return hours, fmt.Errorf("%w: GetOpeningHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return hours, fmt.Errorf("%w: GetOpeningHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var day domain.DaySchedule

		if err := rows.Scan(&weekday, &day.Closed, &day.OpensAt, &day.ClosesAt); err != nil {
			return hours, fmt.Errorf("%w: GetOpeningHours - scan row: %v", ErrScanRow, err)
		}

		if weekday >= 0 && weekday < len(hours) {
			hours[weekday] = day
		}
	}

	if err := rows.Err(); err != nil {
		return hours, fmt.Errorf("%w: GetOpeningHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// ReplaceOpeningHours полностью заменяет недельное расписание тенанта.
// Вызывается внутри транзакции: сначала удаляет старые записи, затем
// вставляет новые для всех семи дней.
func (r *Repository) ReplaceOpeningHours(ctx context.Context, tenantSlug string, hours domain.OpeningHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("opening_hours").
		Where(squirrel.Eq{"tenant_slug": tenantSlug}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("opening_hours").
		Columns("tenant_slug", "weekday", "closed", "opens_at", "closes_at")

	for weekday, day := range hours {
		var opensAt, closesAt interface{}
		if day.IsOpen() {
			opensAt = day.OpensAt
			closesAt = day.ClosesAt
		}
		insertBuilder = insertBuilder.Values(tenantSlug, weekday, day.Closed, opensAt, closesAt)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetLunchExceptions получает исключения обеда тенанта за период [from, to]
func (r *Repository) GetLunchExceptions(ctx context.Context, tenantSlug string, from, to time.Time) ([]*domain.LunchException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_slug", "date", "start_time", "end_time", "created_at", "updated_at").
		From("lunch_exceptions").
		Where(squirrel.Eq{"tenant_slug": tenantSlug}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLunchExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLunchExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.LunchException, 0)
	for rows.Next() {
		var exc domain.LunchException

		err := rows.Scan(
			&exc.ID,
			&exc.TenantSlug,
			&exc.Date,
			&exc.StartTime,
			&exc.EndTime,
			&exc.CreatedAt,
			&exc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetLunchExceptions - scan row: %v", ErrScanRow, err)
		}

		exceptions = append(exceptions, &exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetLunchExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// UpsertLunchException создает или заменяет исключение обеда на дату.
// На пару (tenant_slug, date) существует не более одного исключения.
func (r *Repository) UpsertLunchException(ctx context.Context, exc *domain.LunchException) (*domain.LunchException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("lunch_exceptions").
		Columns("tenant_slug", "date", "start_time", "end_time").
		Values(exc.TenantSlug, exc.Date, exc.StartTime, exc.EndTime).
		Suffix(`ON CONFLICT (tenant_slug, date) DO UPDATE
			SET start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertLunchException - build upsert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &exc.CreatedAt, &exc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertLunchException - execute upsert: %v", ErrExecQuery, err)
	}

	return exc, nil
}

// DeleteLunchException удаляет исключение обеда на дату,
// возвращая тенанту дефолтный обеденный перерыв.
func (r *Repository) DeleteLunchException(ctx context.Context, tenantSlug string, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("lunch_exceptions").
		Where(squirrel.Eq{"tenant_slug": tenantSlug}).
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteLunchException - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteLunchException - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteLunchException - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLunchExceptionNotFound
	}

	return nil
}

// GetStaffWeek получает недельную доступность одного сотрудника.
// Дни без записи остаются nil, что означает "не работает".
func (r *Repository) GetStaffWeek(ctx context.Context, tenantSlug string, staffID int64) (domain.StaffWeek, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var week domain.StaffWeek

	query, args, err := psqlbuilder.Select("weekday", "working", "start_time", "end_time").
		From("staff_availability").
		Where(squirrel.Eq{"tenant_slug": tenantSlug}).
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()

	if err != nil {
		return week, fmt.Errorf("%w: GetStaffWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return week, fmt.Errorf("%w: GetStaffWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var day domain.StaffDay

		if err := rows.Scan(&weekday, &day.Working, &day.StartTime, &day.EndTime); err != nil {
			return week, fmt.Errorf("%w: GetStaffWeek - scan row: %v", ErrScanRow, err)
		}

		if weekday >= 0 && weekday < len(week) {
			week[weekday] = &day
		}
	}

	if err := rows.Err(); err != nil {
		return week, fmt.Errorf("%w: GetStaffWeek - rows error: %v", ErrScanRow, err)
	}

	return week, nil
}

// GetAllStaffWeeks получает доступность всех сотрудников тенанта одной выборкой.
// Используется детектором конфликтов, чтобы не ходить в БД по каждому сотруднику.
func (r *Repository) GetAllStaffWeeks(ctx context.Context, tenantSlug string) (map[int64]domain.StaffWeek, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("staff_id", "weekday", "working", "start_time", "end_time").
		From("staff_availability").
		Where(squirrel.Eq{"tenant_slug": tenantSlug}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllStaffWeeks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllStaffWeeks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	weeks := make(map[int64]domain.StaffWeek)
	for rows.Next() {
		var staffID int64
		var weekday int
		var day domain.StaffDay

		if err := rows.Scan(&staffID, &weekday, &day.Working, &day.StartTime, &day.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetAllStaffWeeks - scan row: %v", ErrScanRow, err)
		}

		week := weeks[staffID]
		if weekday >= 0 && weekday < len(week) {
			week[weekday] = &day
		}
		weeks[staffID] = week
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllStaffWeeks - rows error: %v", ErrScanRow, err)
	}

	return weeks, nil
}

// ReplaceStaffWeek полностью заменяет недельную доступность сотрудника.
// Дни с nil не вставляются: отсутствие записи означает "не работает".
func (r *Repository) ReplaceStaffWeek(ctx context.Context, tenantSlug string, staffID int64, week domain.StaffWeek) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("staff_availability").
		Where(squirrel.Eq{"tenant_slug": tenantSlug}).
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceStaffWeek - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceStaffWeek - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("staff_availability").
		Columns("tenant_slug", "staff_id", "weekday", "working", "start_time", "end_time")

	hasRows := false
	for weekday, day := range week {
		if day == nil {
			continue
		}

		var startTime, endTime interface{}
		if day.Working {
			startTime = day.StartTime
			endTime = day.EndTime
		}
		insertBuilder = insertBuilder.Values(tenantSlug, staffID, weekday, day.Working, startTime, endTime)
		hasRows = true
	}

	if !hasRows {
		return nil
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceStaffWeek - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceStaffWeek - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
