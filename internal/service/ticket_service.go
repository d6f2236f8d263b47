package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/repairdesk/repairs-service/internal/auth"
	"github.com/repairdesk/repairs-service/internal/domain"
	"github.com/repairdesk/repairs-service/internal/events"
	"github.com/repairdesk/repairs-service/internal/repository"
	apperrors "github.com/repairdesk/repairs-service/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	customers  repository.CustomerRepository
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	CustomerRepo repository.CustomerRepository
	EmployeeRepo repository.EmployeeRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// CreateTicketInput describes ticket creation payload. Nil fields take defaults.
type CreateTicketInput struct {
	Description string
	Emergency   *bool
	Priority    *string
}

// TicketListFilter holds the raw list query values; empty means unset.
type TicketListFilter struct {
	Status   string
	Priority string
}

// TicketPatch is a partial ticket update. A nil or zero Employee releases
// the ticket. DateCompleted is applied only when DateCompletedSet is true,
// and a nil value then reopens the ticket.
type TicketPatch struct {
	Employee         *int64
	DateCompletedSet bool
	DateCompleted    *string
	Priority         *string
	Description      *string
	Emergency        *bool
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		customers:  deps.CustomerRepo,
		employees:  deps.EmployeeRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// ScopeFor resolves which tickets the principal may see.
func (s *TicketService) ScopeFor(ctx context.Context, principal *auth.Principal) (domain.TicketScope, error) {
	if principal == nil || principal.User == nil {
		return domain.TicketScope{}, apperrors.NewUnauthorized("authentication required")
	}
	if principal.IsStaff() {
		return domain.TicketScope{All: true}, nil
	}
	customer, err := s.customers.GetByUserID(ctx, principal.User.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return domain.TicketScope{}, nil
		}
		return domain.TicketScope{}, apperrors.MapError(err)
	}
	return domain.TicketScope{CustomerID: customer.ID}, nil
}

// Create files a new ticket for the caller's customer profile.
func (s *TicketService) Create(ctx context.Context, principal *auth.Principal, input CreateTicketInput) (*domain.Ticket, error) {
	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}
	priority := domain.TicketPriorityMedium
	if input.Priority != nil {
		if priority, err = parsePriority(*input.Priority); err != nil {
			return nil, err
		}
	}

	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	customer, err := s.customers.GetByUserID(ctx, principal.User.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("customer", map[string]any{"user_id": principal.User.ID})
		}
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		Customer:    *customer,
		Description: description,
		Priority:    priority,
	}
	if input.Emergency != nil {
		ticket.Emergency = *input.Emergency
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.NewEvent(events.EventTicketCreated, ticket.ID, principal.User.ID, events.TicketCreatedPayload{
		CustomerID: customer.ID,
		Priority:   ticket.Priority,
		Emergency:  ticket.Emergency,
	}))
	return ticket, nil
}

// List returns scoped tickets, newest first.
func (s *TicketService) List(ctx context.Context, principal *auth.Principal, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{}
	if raw := strings.TrimSpace(filter.Status); raw != "" {
		status := domain.StatusFilter(raw)
		if !status.Valid() {
			return nil, apperrors.NewValidationError("status must be one of done, unclaimed, in-progress",
				map[string]any{"status": raw})
		}
		repoFilter.Status = &status
	}
	if raw := strings.TrimSpace(filter.Priority); raw != "" {
		priority, err := parsePriority(raw)
		if err != nil {
			return nil, err
		}
		repoFilter.Priority = &priority
	}

	scope, err := s.ScopeFor(ctx, principal)
	if err != nil {
		return nil, err
	}
	repoFilter.Scope = scope

	tickets, err := s.tickets.List(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Get returns one ticket. Tickets outside the caller's scope are reported
// as missing.
func (s *TicketService) Get(ctx context.Context, principal *auth.Principal, id int64) (*domain.Ticket, error) {
	scope, err := s.ScopeFor(ctx, principal)
	if err != nil {
		return nil, err
	}
	ticket, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Admits(ticket) {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return ticket, nil
}

// Update applies a partial update and returns the stored ticket.
func (s *TicketService) Update(ctx context.Context, principal *auth.Principal, id int64, patch TicketPatch) (*domain.Ticket, error) {
	ticket, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	previousEmployee := employeeID(ticket.Employee)
	wasCompleted := ticket.DateCompleted != nil

	if patch.Employee == nil || *patch.Employee == 0 {
		ticket.Employee = nil
	} else {
		employee, err := s.employees.GetByID(ctx, *patch.Employee)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil, employeeNotFound(*patch.Employee)
			}
			return nil, apperrors.MapError(err)
		}
		ticket.Employee = employee
	}

	if patch.DateCompletedSet {
		if patch.DateCompleted == nil {
			ticket.DateCompleted = nil
		} else {
			completed, err := parseDate(*patch.DateCompleted)
			if err != nil {
				return nil, err
			}
			ticket.DateCompleted = &completed
		}
	}
	if patch.Priority != nil {
		if ticket.Priority, err = parsePriority(*patch.Priority); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		if ticket.Description, err = normalizeDescription(*patch.Description); err != nil {
			return nil, err
		}
	}
	if patch.Emergency != nil {
		ticket.Emergency = *patch.Emergency
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		switch {
		case apperrors.IsNotFound(err):
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		case repository.IsForeignKeyViolation(err) && patch.Employee != nil:
			return nil, employeeNotFound(*patch.Employee)
		}
		return nil, apperrors.MapError(err)
	}

	actor := actorID(principal)
	currentEmployee := employeeID(ticket.Employee)
	if !sameID(previousEmployee, currentEmployee) {
		s.publishEvent(ctx, events.NewEvent(events.EventTicketAssigned, ticket.ID, actor, events.TicketAssignedPayload{
			PreviousEmployeeID: previousEmployee,
			EmployeeID:         currentEmployee,
		}))
	}
	if !wasCompleted && ticket.DateCompleted != nil {
		s.publishEvent(ctx, events.NewEvent(events.EventTicketCompleted, ticket.ID, actor, events.TicketCompletedPayload{
			DateCompleted: ticket.DateCompleted.Format(domain.DateLayout),
		}))
	}
	return ticket, nil
}

// Delete permanently removes a ticket.
func (s *TicketService) Delete(ctx context.Context, principal *auth.Principal, id int64) error {
	ticket, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.NewEvent(events.EventTicketDeleted, id, actorID(principal), events.TicketDeletedPayload{
		CustomerID: ticket.Customer.ID,
	}))
	return nil
}

// Stats counts the caller's tickets by status and urgency.
func (s *TicketService) Stats(ctx context.Context, principal *auth.Principal) (*domain.TicketStats, error) {
	scope, err := s.ScopeFor(ctx, principal)
	if err != nil {
		return nil, err
	}
	stats, err := s.tickets.Stats(ctx, scope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

func (s *TicketService) load(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("ticket event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func normalizeDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if description == "" {
		return "", apperrors.NewValidationError("description is required", nil)
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return "", apperrors.NewValidationError("description must be at most 500 characters", nil)
	}
	return description, nil
}

func parsePriority(raw string) (domain.TicketPriority, error) {
	priority := domain.TicketPriority(strings.ToLower(strings.TrimSpace(raw)))
	if !priority.Valid() {
		return "", apperrors.NewValidationError("priority must be one of low, medium, high, urgent",
			map[string]any{"priority": raw})
	}
	return priority, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(domain.DateLayout, raw); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, d := parsed.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, apperrors.NewValidationError("date_completed must be a date in YYYY-MM-DD format",
		map[string]any{"date_completed": raw})
}

func employeeNotFound(id int64) error {
	return apperrors.NewValidationError("Employee not found", map[string]any{"employee": id})
}

func employeeID(e *domain.Employee) *int64 {
	if e == nil {
		return nil
	}
	id := e.ID
	return &id
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func actorID(principal *auth.Principal) int64 {
	if principal == nil || principal.User == nil {
		return 0
	}
	return principal.User.ID
}
