package waitlist

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
)

var entryColumns = []string{
	"id",
	"customer_id",
	"service_id",
	"preferred_date",
	"preferred_time",
	"status",
	"created_at",
}

// Repository репозиторий листа ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Add добавляет клиента в лист ожидания на конкретный слот
func (r *Repository) Add(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns("customer_id", "service_id", "preferred_date", "preferred_time", "status").
		Values(entry.CustomerID, entry.ServiceID, entry.PreferredDate, entry.PreferredTime, domain.WaitlistActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Add - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Add - execute insert: %v", ErrExecQuery, err)
	}

	entry.Status = domain.WaitlistActive
	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// ListActive возвращает активные записи ожидания услуги. Если date не nil,
// выборка сужается до одного дня
func (r *Repository) ListActive(ctx context.Context, serviceID uuid.UUID, date *time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"status": domain.WaitlistActive}).
		OrderBy("created_at ASC")

	if date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"preferred_date": *date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		var entry domain.WaitlistEntry
		var createdAt sql.NullTime
		if err := rows.Scan(
			&entry.ID,
			&entry.CustomerID,
			&entry.ServiceID,
			&entry.PreferredDate,
			&entry.PreferredTime,
			&entry.Status,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// UpdateStatus переводит запись ожидания в новый статус
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.WaitlistStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
