package service

import (
	"context"

	"github.com/repairdesk/repairs-service/internal/domain"
	"github.com/repairdesk/repairs-service/internal/repository"
	apperrors "github.com/repairdesk/repairs-service/pkg/util/errorutil"
)

// CustomerService exposes read access to customer profiles.
type CustomerService struct {
	customers repository.CustomerRepository
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// List returns every customer ordered by id.
func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return customers, nil
}

// Get fetches one customer.
func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "customer", id)
	}
	return customer, nil
}
