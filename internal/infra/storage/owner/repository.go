package owner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const (
	companiesTable   = "companies"
	usersTable       = "users"
	membershipsTable = "user_companies"
)

// Repository реестр владельцев расписаний: компании, пользователи и их связи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория владельцев
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Exists проверяет, что пользователь состоит в компании
func (r *Repository) Exists(ctx context.Context, owner domain.Owner) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(membershipsTable).
		Where(squirrel.Eq{
			"company_id": owner.CompanyID.String(),
			"user_id":    owner.UserID.String(),
		}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// GetCompany получает компанию по ID
func (r *Repository) GetCompany(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"cancellation_grace_seconds",
		"service_rules",
		"created_at",
		"updated_at",
	).
		From(companiesTable).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCompany - build select query: %v", ErrBuildQuery, err)
	}

	var (
		company      domain.Company
		graceSeconds int64
		serviceRules sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&company.ID,
		&company.Name,
		&graceSeconds,
		&serviceRules,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCompany - scan company: %v", ErrScanRow, err)
	}

	company.CancellationGraceTime = time.Duration(graceSeconds) * time.Second
	if serviceRules.Valid {
		company.ServiceRules = &serviceRules.String
	}

	return &company, nil
}

// UpdateCompany сохраняет время отмены и правила обслуживания компании
func (r *Repository) UpdateCompany(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updated := company.Clone()

	query, args, err := psqlbuilder.Update(companiesTable).
		Set("name", updated.Name).
		Set("cancellation_grace_seconds", int64(updated.CancellationGraceTime/time.Second)).
		Set("service_rules", updated.ServiceRules).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": updated.ID.String()}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCompany - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&updated.CreatedAt, &updated.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCompany - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// GetUserByPhone ищет пользователя по телефону
func (r *Repository) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "phone", "created_at").
		From(usersTable).
		Where(squirrel.Eq{"phone": phone}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserByPhone - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	err = executor.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Name, &user.Phone, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserByPhone - scan user: %v", ErrScanRow, err)
	}

	return &user, nil
}

// CreateUser создает пользователя-клиента
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := *user

	query, args, err := psqlbuilder.Insert(usersTable).
		Columns("name", "phone").
		Values(created.Name, created.Phone).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateUser - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: CreateUser: %v", ErrPhoneTaken, err)
		}
		return nil, fmt.Errorf("%w: CreateUser - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}
