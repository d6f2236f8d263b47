package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/repairdesk/repairs-service/internal/api/dto"
	"github.com/repairdesk/repairs-service/internal/auth"
	"github.com/repairdesk/repairs-service/internal/domain"
	apperrors "github.com/repairdesk/repairs-service/pkg/util/errorutil"
)

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:          ticket.ID,
		Description: ticket.Description,
		Emergency:   ticket.Emergency,
		Priority:    ticket.Priority,
		Status:      ticket.Status(),
		DateCreated: ticket.DateCreated,
		Customer:    customerResponse(&ticket.Customer),
	}
	if ticket.DateCompleted != nil {
		completed := ticket.DateCompleted.Format(domain.DateLayout)
		resp.DateCompleted = &completed
	}
	if ticket.Employee != nil {
		employee := employeeResponse(ticket.Employee)
		resp.Employee = &employee
	}
	return resp
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return items
}

func employeeResponse(employee *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:        employee.ID,
		Specialty: employee.Specialty,
		FullName:  employee.FullName(),
	}
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:       customer.ID,
		User:     customer.UserID,
		Address:  customer.Address,
		FullName: customer.FullName(),
	}
}

func statsResponse(stats *domain.TicketStats) dto.TicketStatsResponse {
	return dto.TicketStatsResponse{
		Total:        stats.Total,
		Open:         stats.Open,
		InProgress:   stats.InProgress,
		Completed:    stats.Completed,
		Urgent:       stats.Urgent,
		HighPriority: stats.HighPriority,
		Emergency:    stats.Emergency,
	}
}

// pathID reads the :id parameter. Anything that is not a positive integer
// cannot name a row, so it is reported as missing.
func pathID(c *fiber.Ctx, resource string) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(resource, map[string]any{"id": c.Params("id")})
	}
	return int64(id), nil
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok || p.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return p, nil
}

func invalidPayload(err error) error {
	return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
}
