package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/repairdesk/repairs-service/internal/domain"
)

// EmployeeRepository handles persistence for employee profiles.
type EmployeeRepository interface {
	List(ctx context.Context) ([]domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	UpdateSpecialty(ctx context.Context, id int64, specialty string) error
	Delete(ctx context.Context, id int64) error
}

type employeeRepository struct {
	db DB
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(db DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeSelect = `
        SELECT e.id, e.user_id, e.specialty, u.first_name, u.last_name
        FROM employees e JOIN users u ON u.id = e.user_id`

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.Query(ctx, employeeSelect+` ORDER BY e.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *employee)
	}
	return result, rows.Err()
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return scanEmployee(r.db.QueryRow(ctx, employeeSelect+` WHERE e.id=$1`, id))
}

func (r *employeeRepository) UpdateSpecialty(ctx context.Context, id int64, specialty string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE employees SET specialty=$1 WHERE id=$2`, specialty, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the employee profile. The linked user stays; tickets
// assigned to the employee become unassigned through the foreign key.
func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	if err := row.Scan(
		&employee.ID,
		&employee.UserID,
		&employee.Specialty,
		&employee.FirstName,
		&employee.LastName,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}
