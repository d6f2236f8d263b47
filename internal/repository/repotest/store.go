// Package repotest provides in-memory implementations of the repository
// interfaces for service and handler tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/repairdesk/repairs-service/internal/domain"
	"github.com/repairdesk/repairs-service/internal/repository"
)

type ticketRow struct {
	id            int64
	customerID    int64
	employeeID    *int64
	description   string
	emergency     bool
	priority      domain.TicketPriority
	dateCreated   time.Time
	dateCompleted *time.Time
}

// Store keeps users, profiles and tickets in maps and enforces the same
// unique and foreign key rules as the SQL schema.
type Store struct {
	mu        sync.Mutex
	seq       int64
	clock     time.Time
	users     map[int64]domain.User
	customers map[int64]domain.Customer
	employees map[int64]domain.Employee
	tickets   map[int64]ticketRow
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		clock:     time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		users:     map[int64]domain.User{},
		customers: map[int64]domain.Customer{},
		employees: map[int64]domain.Employee{},
		tickets:   map[int64]ticketRow{},
	}
}

// Users returns the UserRepository view of the store.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Customers returns the CustomerRepository view of the store.
func (s *Store) Customers() repository.CustomerRepository { return customerRepo{s} }

// Employees returns the EmployeeRepository view of the store.
func (s *Store) Employees() repository.EmployeeRepository { return employeeRepo{s} }

// Tickets returns the TicketRepository view of the store.
func (s *Store) Tickets() repository.TicketRepository { return ticketRepo{s} }

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// tick advances the fake clock so creation order is strictly increasing.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func foreignKeyViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
}

type userRepo struct{ s *Store }

func (r userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r userRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepo) CreateCustomerAccount(_ context.Context, user *domain.User, customer *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.IsStaff = false
	if err := r.s.insertUser(user); err != nil {
		return err
	}
	customer.ID = r.s.nextID()
	customer.UserID = user.ID
	customer.FirstName, customer.LastName = user.FirstName, user.LastName
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r userRepo) CreateEmployeeAccount(_ context.Context, user *domain.User, employee *domain.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.IsStaff = true
	if err := r.s.insertUser(user); err != nil {
		return err
	}
	employee.ID = r.s.nextID()
	employee.UserID = user.ID
	employee.FirstName, employee.LastName = user.FirstName, user.LastName
	r.s.employees[employee.ID] = *employee
	return nil
}

func (s *Store) insertUser(user *domain.User) error {
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return uniqueViolation("users_username_key")
		}
		if existing.Email == user.Email {
			return uniqueViolation("users_email_key")
		}
	}
	user.ID = s.nextID()
	user.DateJoined = s.tick()
	s.users[user.ID] = *user
	return nil
}

type customerRepo struct{ s *Store }

func (r customerRepo) List(_ context.Context) ([]domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.Customer, 0, len(r.s.customers))
	for _, customer := range r.s.customers {
		result = append(result, customer)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r customerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	customer, ok := r.s.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &customer, nil
}

func (r customerRepo) GetByUserID(_ context.Context, userID int64) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, customer := range r.s.customers {
		if customer.UserID == userID {
			found := customer
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type employeeRepo struct{ s *Store }

func (r employeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.Employee, 0, len(r.s.employees))
	for _, employee := range r.s.employees {
		result = append(result, employee)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r employeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	employee, ok := r.s.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &employee, nil
}

func (r employeeRepo) UpdateSpecialty(_ context.Context, id int64, specialty string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	employee, ok := r.s.employees[id]
	if !ok {
		return pgx.ErrNoRows
	}
	employee.Specialty = specialty
	r.s.employees[id] = employee
	return nil
}

func (r employeeRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.employees, id)
	for ticketID, row := range r.s.tickets {
		if row.employeeID != nil && *row.employeeID == id {
			row.employeeID = nil
			r.s.tickets[ticketID] = row
		}
	}
	return nil
}

type ticketRepo struct{ s *Store }

func (r ticketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, err := r.s.toRow(ticket)
	if err != nil {
		return err
	}
	row.id = r.s.nextID()
	row.dateCreated = r.s.tick()
	r.s.tickets[row.id] = row
	ticket.ID, ticket.DateCreated = row.id, row.dateCreated
	return nil
}

func (r ticketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	row, err := r.s.toRow(ticket)
	if err != nil {
		return err
	}
	row.id, row.customerID, row.dateCreated = existing.id, existing.customerID, existing.dateCreated
	r.s.tickets[row.id] = row
	return nil
}

func (r ticketRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.tickets, id)
	return nil
}

func (r ticketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.s.toTicket(row), nil
}

func (r ticketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []domain.Ticket{}
	for _, row := range r.s.tickets {
		ticket := r.s.toTicket(row)
		if !filter.Scope.Admits(ticket) {
			continue
		}
		if filter.Status != nil && !filter.Status.Matches(ticket) {
			continue
		}
		if filter.Priority != nil && ticket.Priority != *filter.Priority {
			continue
		}
		result = append(result, *ticket)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DateCreated.Equal(result[j].DateCreated) {
			return result[i].ID > result[j].ID
		}
		return result[i].DateCreated.After(result[j].DateCreated)
	})
	return result, nil
}

func (r ticketRepo) Stats(_ context.Context, scope domain.TicketScope) (*domain.TicketStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var stats domain.TicketStats
	for _, row := range r.s.tickets {
		ticket := r.s.toTicket(row)
		if !scope.Admits(ticket) {
			continue
		}
		stats.Total++
		switch ticket.Status() {
		case domain.TicketStatusOpen:
			stats.Open++
		case domain.TicketStatusInProgress:
			stats.InProgress++
		case domain.TicketStatusCompleted:
			stats.Completed++
			continue
		}
		if ticket.Priority == domain.TicketPriorityUrgent {
			stats.Urgent++
		}
		if ticket.Priority == domain.TicketPriorityHigh {
			stats.HighPriority++
		}
		if ticket.Emergency {
			stats.Emergency++
		}
	}
	return &stats, nil
}

func (s *Store) toRow(ticket *domain.Ticket) (ticketRow, error) {
	if _, ok := s.customers[ticket.Customer.ID]; !ok && ticket.ID == 0 {
		return ticketRow{}, foreignKeyViolation("tickets_customer_id_fkey")
	}
	row := ticketRow{
		customerID:    ticket.Customer.ID,
		description:   ticket.Description,
		emergency:     ticket.Emergency,
		priority:      ticket.Priority,
		dateCompleted: ticket.DateCompleted,
	}
	if ticket.Employee != nil {
		if _, ok := s.employees[ticket.Employee.ID]; !ok {
			return ticketRow{}, foreignKeyViolation("tickets_employee_id_fkey")
		}
		id := ticket.Employee.ID
		row.employeeID = &id
	}
	return row, nil
}

func (s *Store) toTicket(row ticketRow) *domain.Ticket {
	ticket := &domain.Ticket{
		ID:            row.id,
		Customer:      s.customers[row.customerID],
		Description:   row.description,
		Emergency:     row.emergency,
		Priority:      row.priority,
		DateCreated:   row.dateCreated,
		DateCompleted: row.dateCompleted,
	}
	if row.employeeID != nil {
		if employee, ok := s.employees[*row.employeeID]; ok {
			ticket.Employee = &employee
		}
	}
	return ticket
}
