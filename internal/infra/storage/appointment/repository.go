package appointment

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

var appointmentColumns = []string{
	"id",
	"customer_id",
	"appointment_date",
	"appointment_time",
	"status",
	"notes",
	"calendar_event_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей (appointments + appointment_services)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись. Привязка услуг выполняется отдельно через
// LinkServices; координатор бронирования оборачивает оба вызова в одну
// транзакцию, чтобы не оставлять осиротевших записей
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"customer_id",
			"appointment_date",
			"appointment_time",
			"status",
			"notes",
		).
		Values(
			appt.CustomerID,
			appt.Date,
			appt.StartTime,
			appt.Status,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// LinkServices вставляет join-строки услуг записи, по одной на услугу
func (r *Repository) LinkServices(ctx context.Context, appointmentID uuid.UUID, items []domain.AppointmentService) error {
	if len(items) == 0 {
		return ErrNoServices
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("appointment_services").
		Columns("appointment_id", "service_id", "quantity", "price_at_booking")
	for _, item := range items {
		insertBuilder = insertBuilder.Values(appointmentID, item.ServiceID, item.Quantity, item.PriceAtBooking)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: LinkServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LinkServices - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CountActiveAt возвращает количество занятых мест услуги на конкретном
// слоте (date, time). Отменённые записи не учитываются; quantity join-строки
// потребляет соответствующее количество мест
func (r *Repository) CountActiveAt(ctx context.Context, serviceID uuid.UUID, date time.Time, slotTime types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(aps.quantity), 0)").
		From("appointment_services aps").
		Join("appointments a ON a.id = aps.appointment_id").
		Where(squirrel.Eq{"aps.service_id": serviceID}).
		Where(squirrel.Eq{"a.appointment_date": date}).
		Where(squirrel.Eq{"a.appointment_time": slotTime}).
		Where(squirrel.NotEq{"a.status": domain.StatusCancelled}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveAt - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveAt - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveForDate возвращает занятость всех запрошенных услуг за целый
// день одной выборкой: serviceID -> слот -> занято мест.
// Используется калькулятором доступности вместо запроса на каждую пару
// (услуга, слот)
func (r *Repository) CountActiveForDate(ctx context.Context, serviceIDs []uuid.UUID, date time.Time) (map[uuid.UUID]map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"aps.service_id",
		"a.appointment_time",
		"COALESCE(SUM(aps.quantity), 0)",
	).
		From("appointment_services aps").
		Join("appointments a ON a.id = aps.appointment_id").
		Where(squirrel.Eq{"aps.service_id": serviceIDs}).
		Where(squirrel.Eq{"a.appointment_date": date}).
		Where(squirrel.NotEq{"a.status": domain.StatusCancelled}).
		GroupBy("aps.service_id", "a.appointment_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]map[types.TimeString]int, len(serviceIDs))
	for rows.Next() {
		var serviceID uuid.UUID
		var slotTime types.TimeString
		var count int
		if err := rows.Scan(&serviceID, &slotTime, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveForDate - scan row: %v", ErrScanRow, err)
		}
		if counts[serviceID] == nil {
			counts[serviceID] = make(map[types.TimeString]int)
		}
		counts[serviceID][slotTime] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveForDate - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// GetByID получает запись вместе с привязанными услугами
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	services, err := r.loadServices(ctx, []uuid.UUID{appt.ID})
	if err != nil {
		return nil, err
	}
	appt.Services = services[appt.ID]

	return appt, nil
}

// ListWithFilter получает записи с фильтрацией по периоду, статусу и клиенту
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		OrderBy("appointment_date DESC, appointment_time DESC")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.ToDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
		ids = append(ids, appt.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return appointments, nil
	}

	// Подгружаем услуги всех записей одним запросом
	services, err := r.loadServices(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, appt := range appointments {
		appt.Services = services[appt.ID]
	}

	return appointments, nil
}

// UpdateStatus обновляет статус записи
// Отмена - это UpdateStatus(cancelled): запись исключается из подсчёта
// занятости, но физически не удаляется
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
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
		return ErrAppointmentNotFound
	}

	return nil
}

// SetCalendarEventID сохраняет ID события внешнего календаря после
// успешной синхронизации
func (r *Repository) SetCalendarEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("calendar_event_id", eventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) loadServices(ctx context.Context, appointmentIDs []uuid.UUID) (map[uuid.UUID][]domain.AppointmentService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"aps.appointment_id",
		"aps.service_id",
		"aps.quantity",
		"aps.price_at_booking",
		"s.name",
	).
		From("appointment_services aps").
		Join("services s ON s.id = aps.service_id").
		Where(squirrel.Eq{"aps.appointment_id": appointmentIDs}).
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.AppointmentService, len(appointmentIDs))
	for rows.Next() {
		var item domain.AppointmentService
		if err := rows.Scan(
			&item.AppointmentID,
			&item.ServiceID,
			&item.Quantity,
			&item.PriceAtBooking,
			&item.ServiceName,
		); err != nil {
			return nil, fmt.Errorf("%w: loadServices - scan row: %v", ErrScanRow, err)
		}
		result[item.AppointmentID] = append(result[item.AppointmentID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadServices - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.CustomerID,
		&appt.Date,
		&appt.StartTime,
		&appt.Status,
		&appt.Notes,
		&appt.CalendarEventID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}
