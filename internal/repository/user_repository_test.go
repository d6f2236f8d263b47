package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repairdesk/repairs-service/internal/domain"
)

func TestUserRepository_CreateEmployeeAccountMarksStaff(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewUserRepository(mock)
	joined := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("bob", "bob@example.com", "hash", "Bob", "Jones", true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "date_joined"}).AddRow(int64(5), joined))
	mock.ExpectQuery(`INSERT INTO employees`).
		WithArgs(int64(5), "printers").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectCommit()

	user := &domain.User{Username: "bob", Email: "bob@example.com", PasswordHash: "hash", FirstName: "Bob", LastName: "Jones"}
	employee := &domain.Employee{Specialty: "printers"}
	require.NoError(t, repo.CreateEmployeeAccount(context.Background(), user, employee))

	assert.True(t, user.IsStaff)
	assert.Equal(t, int64(5), employee.UserID)
	assert.Equal(t, int64(2), employee.ID)
	assert.Equal(t, "Bob Jones", employee.FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateCustomerAccountRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewUserRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "alice@example.com", "hash", "Alice", "Smith", false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "date_joined"}).AddRow(int64(1), time.Now()))
	mock.ExpectQuery(`INSERT INTO customers`).
		WithArgs(int64(1), "1 Main St").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	user := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", FirstName: "Alice", LastName: "Smith"}
	err = repo.CreateCustomerAccount(context.Background(), user, &domain.Customer{Address: "1 Main St"})
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UsernameExists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE username=\$1\)`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	found, err := repo.UsernameExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.Equal(t, "users_email_key", ViolatedConstraint(unique))
	assert.Empty(t, ViolatedConstraint(errors.New("plain")))
}
