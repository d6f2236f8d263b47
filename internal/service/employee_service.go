package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/repairdesk/repairs-service/internal/domain"
	"github.com/repairdesk/repairs-service/internal/repository"
	apperrors "github.com/repairdesk/repairs-service/pkg/util/errorutil"
)

// EmployeeService manages employee profiles.
type EmployeeService struct {
	employees repository.EmployeeRepository
	accounts  *AuthService
}

// EmployeeDependencies bundles what the employee service needs.
type EmployeeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Accounts     *AuthService
}

// EmployeePatch updates the specialty. ID is optional; when given it must
// match the employee being updated.
type EmployeePatch struct {
	ID        int64
	Specialty *string
}

// EmployeeCreateInput is the staff-driven employee creation form.
type EmployeeCreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Specialty string
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{employees: deps.EmployeeRepo, accounts: deps.Accounts}
}

// List returns every employee ordered by id.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}

// Get fetches one employee.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "employee", id)
	}
	return employee, nil
}

// Update changes the specialty of the employee named by id.
func (s *EmployeeService) Update(ctx context.Context, id int64, patch EmployeePatch) error {
	if patch.ID != 0 && patch.ID != id {
		return apperrors.NewValidationError("employee id in body does not match the path",
			map[string]any{"path_id": id, "body_id": patch.ID})
	}
	if patch.Specialty == nil || strings.TrimSpace(*patch.Specialty) == "" {
		return apperrors.NewValidationError("You must provide a specialty for an employee", nil)
	}
	specialty := strings.TrimSpace(*patch.Specialty)
	if utf8.RuneCountInString(specialty) > maxProfileField {
		return apperrors.NewValidationError("Specialty must be at most 155 characters", nil)
	}
	if err := s.employees.UpdateSpecialty(ctx, id, specialty); err != nil {
		return notFoundOr(err, "employee", id)
	}
	return nil
}

// Delete removes the employee. Their tickets become unassigned.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return notFoundOr(err, "employee", id)
	}
	return nil
}

// Create registers a staff user with an employee profile.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeCreateInput) (*domain.Employee, error) {
	account, err := s.accounts.CreateAccount(ctx, RegisterInput{
		AccountType: AccountTypeEmployee,
		Username:    input.Username,
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Password:    input.Password,
		Specialty:   input.Specialty,
	})
	if err != nil {
		return nil, err
	}
	return account.Employee, nil
}

func notFoundOr(err error, resource string, id int64) error {
	if apperrors.IsNotFound(err) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
