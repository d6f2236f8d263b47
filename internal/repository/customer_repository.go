package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/repairdesk/repairs-service/internal/domain"
)

// CustomerRepository reads customer profiles. Customers are only created
// through registration, see UserRepository.CreateCustomerAccount.
type CustomerRepository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error)
}

type customerRepository struct {
	db DB
}

// NewCustomerRepository instantiates the repository.
func NewCustomerRepository(db DB) CustomerRepository {
	return &customerRepository{db: db}
}

const customerSelect = `
        SELECT c.id, c.user_id, c.address, u.first_name, u.last_name
        FROM customers c JOIN users u ON u.id = c.user_id`

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx, customerSelect+` ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *customer)
	}
	return result, rows.Err()
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return scanCustomer(r.db.QueryRow(ctx, customerSelect+` WHERE c.id=$1`, id))
}

func (r *customerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error) {
	return scanCustomer(r.db.QueryRow(ctx, customerSelect+` WHERE c.user_id=$1`, userID))
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var customer domain.Customer
	if err := row.Scan(
		&customer.ID,
		&customer.UserID,
		&customer.Address,
		&customer.FirstName,
		&customer.LastName,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}
