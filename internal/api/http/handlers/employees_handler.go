package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/repairdesk/repairs-service/internal/api/dto"
	"github.com/repairdesk/repairs-service/internal/service"
)

// EmployeesHandler manages employee endpoints.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// ListEmployees GET /employees.
func (h *EmployeesHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, employeeResponse(&employees[i]))
	}
	return c.JSON(items)
}

// GetEmployee GET /employees/:id.
func (h *EmployeesHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := pathID(c, "employee")
	if err != nil {
		return err
	}
	employee, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(employeeResponse(employee))
}

// CreateEmployee POST /employees.
func (h *EmployeesHandler) CreateEmployee(c *fiber.Ctx) error {
	var req dto.EmployeeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	employee, err := h.service.Create(c.UserContext(), service.EmployeeCreateInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Specialty: req.Specialty,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(employeeResponse(employee))
}

// UpdateEmployee PUT /employees/:id.
func (h *EmployeesHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := pathID(c, "employee")
	if err != nil {
		return err
	}
	var req dto.EmployeeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	if err := h.service.Update(c.UserContext(), id, service.EmployeePatch{ID: req.ID, Specialty: req.Specialty}); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteEmployee DELETE /employees/:id.
func (h *EmployeesHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := pathID(c, "employee")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
