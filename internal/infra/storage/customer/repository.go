package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/lunanails/NS-BookingService/internal/domain"
	"github.com/lunanails/NS-BookingService/pkg/dbmetrics"
	"github.com/lunanails/NS-BookingService/pkg/psqlbuilder"
)

var customerColumns = []string{
	"id",
	"first_name",
	"last_name",
	"email",
	"phone",
	"created_at",
}

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByEmail находит клиента по email. Email уникален на уровне БД
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	cust, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan customer: %v", ErrScanRow, err)
	}

	return cust, nil
}

// GetByID находит клиента по идентификатору
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	cust, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	return cust, nil
}

// Create создает нового клиента
func (r *Repository) Create(ctx context.Context, cust *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("first_name", "last_name", "email", "phone").
		Values(cust.FirstName, cust.LastName, cust.Email, cust.Phone).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cust.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cust.CreatedAt = createdAt.Time

	return cust, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var cust domain.Customer
	var createdAt sql.NullTime

	err := row.Scan(
		&cust.ID,
		&cust.FirstName,
		&cust.LastName,
		&cust.Email,
		&cust.Phone,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	cust.CreatedAt = createdAt.Time

	return &cust, nil
}
