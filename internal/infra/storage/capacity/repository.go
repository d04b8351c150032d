package capacity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/dbmetrics"
	"github.com/lunanails/NS-BookingService/pkg/psqlbuilder"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

var overrideColumns = []string{
	"id",
	"service_id",
	"override_date",
	"override_time",
	"max_bookings",
	"reason",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий переопределений вместимости слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория переопределений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет переопределение для ключа
// (service_id, override_date, override_time). Повторный вызов по тому же
// ключу перезаписывает max_bookings и reason и реактивирует запись
func (r *Repository) Upsert(ctx context.Context, override *domain.CapacityOverride) (*domain.CapacityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("capacity_overrides").
		Columns(
			"service_id",
			"override_date",
			"override_time",
			"max_bookings",
			"reason",
			"is_active",
		).
		Values(
			override.ServiceID,
			override.Date,
			override.Time,
			override.MaxBookings,
			override.Reason,
			true,
		).
		Suffix(`ON CONFLICT (service_id, override_date, override_time) DO UPDATE
			SET max_bookings = EXCLUDED.max_bookings,
			    reason = EXCLUDED.reason,
			    is_active = TRUE,
			    updated_at = NOW()
			RETURNING id, is_active, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&override.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// GetActiveAt возвращает активное переопределение одного слота либо nil,
// если его нет
func (r *Repository) GetActiveAt(ctx context.Context, serviceID uuid.UUID, date time.Time, slotTime types.TimeString) (*domain.CapacityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("capacity_overrides").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"override_date": date}).
		Where(squirrel.Eq{"override_time": slotTime}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveAt - build select query: %v", ErrBuildQuery, err)
	}

	override, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveAt - scan override: %v", ErrScanRow, err)
	}

	return override, nil
}

// ListActiveForDate возвращает активные переопределения всех запрошенных
// услуг за день одной выборкой, индексированные ключом (услуга, слот)
func (r *Repository) ListActiveForDate(ctx context.Context, serviceIDs []uuid.UUID, date time.Time) (map[domain.OverrideKey]*domain.CapacityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("capacity_overrides").
		Where(squirrel.Eq{"service_id": serviceIDs}).
		Where(squirrel.Eq{"override_date": date}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make(map[domain.OverrideKey]*domain.CapacityOverride)
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveForDate - scan row: %v", ErrScanRow, err)
		}
		key := domain.OverrideKey{ServiceID: override.ServiceID, Time: override.Time}
		overrides[key] = override
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveForDate - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// ListByService возвращает все переопределения услуги начиная с указанной
// даты, включая деактивированные (для админского просмотра истории)
func (r *Repository) ListByService(ctx context.Context, serviceID uuid.UUID, fromDate time.Time) ([]*domain.CapacityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("capacity_overrides").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.GtOrEq{"override_date": fromDate}).
		OrderBy("override_date ASC, override_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.CapacityOverride, 0)
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByService - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByService - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// Deactivate выключает переопределение без удаления строки, слот
// возвращается к базовой вместимости услуги
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("capacity_overrides").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOverride(row rowScanner) (*domain.CapacityOverride, error) {
	var override domain.CapacityOverride
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.ID,
		&override.ServiceID,
		&override.Date,
		&override.Time,
		&override.MaxBookings,
		&override.Reason,
		&override.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}
