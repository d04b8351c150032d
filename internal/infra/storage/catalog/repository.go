package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/dbmetrics"
	"github.com/lunanails/NS-BookingService/pkg/psqlbuilder"
	"github.com/lunanails/NS-BookingService/pkg/types"
)

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"price",
	"duration_minutes",
	"image_url",
	"is_active",
	"max_bookings_per_slot",
	"default_start_time",
	"default_end_time",
	"slot_duration_minutes",
	"buffer_time_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу по ID (включая неактивные)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return service, nil
}

// GetActiveByIDs получает активные услуги по списку ID
// Услуги, которых нет в каталоге или которые деактивированы, в результат
// не попадают - вызывающая сторона сверяет длину со списком запрошенных
func (r *Repository) GetActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0, len(ids))
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByIDs - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByIDs - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// CapacityUpdate параметры обновления ёмкости услуги
// nil-поля не изменяются
type CapacityUpdate struct {
	MaxBookingsPerSlot  int
	StartTime           *types.TimeString
	EndTime             *types.TimeString
	SlotDurationMinutes *int
	BufferTimeMinutes   *int
}

// UpdateCapacity обновляет настройки ёмкости услуги
func (r *Repository) UpdateCapacity(ctx context.Context, id uuid.UUID, update CapacityUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("services").
		Set("max_bookings_per_slot", update.MaxBookingsPerSlot).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.StartTime != nil {
		updateBuilder = updateBuilder.Set("default_start_time", *update.StartTime)
	}
	if update.EndTime != nil {
		updateBuilder = updateBuilder.Set("default_end_time", *update.EndTime)
	}
	if update.SlotDurationMinutes != nil {
		updateBuilder = updateBuilder.Set("slot_duration_minutes", *update.SlotDurationMinutes)
	}
	if update.BufferTimeMinutes != nil {
		updateBuilder = updateBuilder.Set("buffer_time_minutes", *update.BufferTimeMinutes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacity - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var createdAt, updatedAt sql.NullTime
	var startTime, endTime types.TimeString
	var slotDuration sql.NullInt64

	err := row.Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.Price,
		&service.DurationMinutes,
		&service.ImageURL,
		&service.IsActive,
		&service.MaxBookingsPerSlot,
		&startTime,
		&endTime,
		&slotDuration,
		&service.BufferTimeMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if !startTime.IsZero() {
		service.DefaultStartTime = &startTime
	}
	if !endTime.IsZero() {
		service.DefaultEndTime = &endTime
	}
	if slotDuration.Valid {
		duration := int(slotDuration.Int64)
		service.SlotDurationMinutes = &duration
	}
	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}
