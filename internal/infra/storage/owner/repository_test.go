package owner

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

var now = time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)

func TestExists(t *testing.T) {
	repo, mock := newMock(t)
	owner := domain.Owner{CompanyID: uuid.New(), UserID: uuid.New()}

	mock.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM user_companies WHERE company_id = \$1 AND user_id = \$2 \)`).
		WithArgs(owner.CompanyID.String(), owner.UserID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), owner)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCompany(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT id, name, cancellation_grace_seconds, service_rules, created_at, updated_at FROM companies WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cancellation_grace_seconds", "service_rules", "created_at", "updated_at"}).
			AddRow(id.String(), "Barbershop", int64(5400), nil, now, now))

	company, err := repo.GetCompany(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, company.ID)
	assert.Equal(t, 90*time.Minute, company.CancellationGraceTime)
	assert.Nil(t, company.ServiceRules)

	mock.ExpectQuery(`FROM companies`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetCompany(context.Background(), id)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCompany(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()
	later := now.Add(time.Hour)

	mock.ExpectQuery(`UPDATE companies SET name = \$1, cancellation_grace_seconds = \$2, service_rules = \$3, updated_at = NOW\(\) WHERE id = \$4 RETURNING created_at, updated_at`).
		WithArgs("Barbershop", int64(86400), "no pets", id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, later))

	updated, err := repo.UpdateCompany(context.Background(), &domain.Company{
		ID:                    id,
		Name:                  "Barbershop",
		CancellationGraceTime: 24 * time.Hour,
		ServiceRules:          ptr.Ptr("no pets"),
	})
	require.NoError(t, err)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByPhoneNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT id, name, phone, created_at FROM users WHERE phone = \$1`).
		WithArgs("+79990000001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "created_at"}))

	_, err := repo.GetUserByPhone(context.Background(), "+79990000001")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(`INSERT INTO users \(name,phone\) VALUES \(\$1,\$2\) RETURNING id, created_at`).
		WithArgs("Client", "+79990000002").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), now))

	created, err := repo.CreateUser(context.Background(), &domain.User{Name: "Client", Phone: "+79990000002"})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err = repo.CreateUser(context.Background(), &domain.User{Name: "Client", Phone: "+79990000002"})
	assert.ErrorIs(t, err, ErrPhoneTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
