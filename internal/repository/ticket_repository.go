package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/repairdesk/repairs-service/internal/domain"
)

// TicketFilter narrows a ticket listing. Scope is applied before the
// status and priority predicates.
type TicketFilter struct {
	Scope    domain.TicketScope
	Status   *domain.StatusFilter
	Priority *domain.TicketPriority
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Stats(ctx context.Context, scope domain.TicketScope) (*domain.TicketStats, error)
}

type ticketRepository struct {
	db DB
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(db DB) TicketRepository {
	return &ticketRepository{db: db}
}

const ticketSelect = `
        SELECT t.id, t.description, t.emergency, t.priority, t.date_created, t.date_completed,
               c.id, c.user_id, c.address, cu.first_name, cu.last_name,
               e.id, e.user_id, e.specialty, eu.first_name, eu.last_name
        FROM tickets t
        JOIN customers c ON c.id = t.customer_id
        JOIN users cu ON cu.id = c.user_id
        LEFT JOIN employees e ON e.id = t.employee_id
        LEFT JOIN users eu ON eu.id = e.user_id`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (customer_id, employee_id, description, emergency, priority, date_completed)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, date_created`
	return r.db.QueryRow(ctx, query,
		ticket.Customer.ID,
		employeeID(ticket),
		ticket.Description,
		ticket.Emergency,
		ticket.Priority,
		ticket.DateCompleted,
	).Scan(&ticket.ID, &ticket.DateCreated)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET employee_id=$1, description=$2, emergency=$3, priority=$4, date_completed=$5
        WHERE id=$6`
	cmd, err := r.db.Exec(ctx, query,
		employeeID(ticket),
		ticket.Description,
		ticket.Emergency,
		ticket.Priority,
		ticket.DateCompleted,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	return scanTicket(r.db.QueryRow(ctx, ticketSelect+` WHERE t.id=$1`, id))
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses, args := scopeClauses(filter.Scope)

	if filter.Status != nil {
		switch *filter.Status {
		case domain.StatusFilterDone:
			clauses = append(clauses, "t.date_completed IS NOT NULL")
		case domain.StatusFilterUnclaimed:
			clauses = append(clauses, "t.date_completed IS NULL", "t.employee_id IS NULL")
		case domain.StatusFilterInProgress:
			clauses = append(clauses, "t.date_completed IS NULL", "t.employee_id IS NOT NULL")
		default:
			return nil, fmt.Errorf("unsupported status filter %q", *filter.Status)
		}
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("t.priority=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY t.date_created DESC, t.id DESC`,
		ticketSelect, strings.Join(clauses, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

// Stats computes every counter in a single statement so they describe the
// same snapshot.
func (r *ticketRepository) Stats(ctx context.Context, scope domain.TicketScope) (*domain.TicketStats, error) {
	clauses, args := scopeClauses(scope)
	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE t.date_completed IS NULL AND t.employee_id IS NULL),
               COUNT(*) FILTER (WHERE t.date_completed IS NULL AND t.employee_id IS NOT NULL),
               COUNT(*) FILTER (WHERE t.date_completed IS NOT NULL),
               COUNT(*) FILTER (WHERE t.priority = 'urgent' AND t.date_completed IS NULL),
               COUNT(*) FILTER (WHERE t.priority = 'high' AND t.date_completed IS NULL),
               COUNT(*) FILTER (WHERE t.emergency AND t.date_completed IS NULL)
        FROM tickets t WHERE ` + strings.Join(clauses, " AND ")

	var stats domain.TicketStats
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Open,
		&stats.InProgress,
		&stats.Completed,
		&stats.Urgent,
		&stats.HighPriority,
		&stats.Emergency,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func scopeClauses(scope domain.TicketScope) ([]string, []any) {
	switch {
	case scope.All:
		return []string{"1=1"}, []any{}
	case scope.Empty():
		return []string{"1=0"}, []any{}
	default:
		return []string{"t.customer_id=$1"}, []any{scope.CustomerID}
	}
}

func employeeID(ticket *domain.Ticket) *int64 {
	if ticket.Employee == nil {
		return nil
	}
	id := ticket.Employee.ID
	return &id
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket       domain.Ticket
		empID        *int64
		empUserID    *int64
		empSpecialty *string
		empFirstName *string
		empLastName  *string
	)
	if err := row.Scan(
		&ticket.ID,
		&ticket.Description,
		&ticket.Emergency,
		&ticket.Priority,
		&ticket.DateCreated,
		&ticket.DateCompleted,
		&ticket.Customer.ID,
		&ticket.Customer.UserID,
		&ticket.Customer.Address,
		&ticket.Customer.FirstName,
		&ticket.Customer.LastName,
		&empID,
		&empUserID,
		&empSpecialty,
		&empFirstName,
		&empLastName,
	); err != nil {
		return nil, err
	}
	if empID != nil {
		ticket.Employee = &domain.Employee{
			ID:        *empID,
			UserID:    deref(empUserID),
			Specialty: deref(empSpecialty),
			FirstName: deref(empFirstName),
			LastName:  deref(empLastName),
		}
	}
	return &ticket, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
