package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(`FROM employees e JOIN users u ON u.id = e.user_id ORDER BY e.id`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "specialty", "first_name", "last_name"}).
			AddRow(int64(1), int64(5), "printers", "Bob", "Jones").
			AddRow(int64(2), int64(6), "laptops", "Carol", "White"))

	employees, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Carol White", employees[1].FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_UpdateSpecialtyMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewEmployeeRepository(mock)

	mock.ExpectExec(`UPDATE employees SET specialty=\$1 WHERE id=\$2`).
		WithArgs("phones", int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.UpdateSpecialty(context.Background(), 9, "phones"), pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_GetByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewCustomerRepository(mock)

	mock.ExpectQuery(`WHERE c.user_id=\$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "address", "first_name", "last_name"}).
			AddRow(int64(4), int64(1), "1 Main St", "Alice", "Smith"))

	customer, err := repo.GetByUserID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), customer.ID)
	assert.Equal(t, "Alice Smith", customer.FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}
