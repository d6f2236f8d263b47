package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repairdesk/repairs-service/internal/auth"
	"github.com/repairdesk/repairs-service/internal/config"
	"github.com/repairdesk/repairs-service/internal/domain"
	"github.com/repairdesk/repairs-service/internal/events"
	"github.com/repairdesk/repairs-service/internal/repository/repotest"
	apperrors "github.com/repairdesk/repairs-service/pkg/util/errorutil"
)

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4}}
}

type fixture struct {
	store     *repotest.Store
	auth      *AuthService
	tickets   *TicketService
	employees *EmployeeService
	customers *CustomerService
	published []events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: repotest.NewStore()}
	dispatcher := events.NewInMemoryDispatcher()
	for _, eventType := range events.AllTicketEvents {
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			f.published = append(f.published, e)
			return nil
		})
	}
	f.auth = NewAuthService(testConfig(), AuthDependencies{UserRepo: f.store.Users()})
	f.tickets = NewTicketService(TicketDependencies{
		TicketRepo:   f.store.Tickets(),
		CustomerRepo: f.store.Customers(),
		EmployeeRepo: f.store.Employees(),
		Dispatcher:   dispatcher,
	})
	f.employees = NewEmployeeService(EmployeeDependencies{EmployeeRepo: f.store.Employees(), Accounts: f.auth})
	f.customers = NewCustomerService(f.store.Customers())
	return f
}

func (f *fixture) customer(t *testing.T, username string) (*auth.Principal, *domain.Customer) {
	t.Helper()
	account, err := f.auth.CreateAccount(context.Background(), RegisterInput{
		AccountType: AccountTypeCustomer, Username: username, Email: username + "@example.com",
		FirstName: "Cust", LastName: username, Password: "pw", Address: "1 Main St",
	})
	require.NoError(t, err)
	return &auth.Principal{User: account.User}, account.Customer
}

func (f *fixture) employee(t *testing.T, username string) (*auth.Principal, *domain.Employee) {
	t.Helper()
	account, err := f.auth.CreateAccount(context.Background(), RegisterInput{
		AccountType: AccountTypeEmployee, Username: username, Email: username + "@example.com",
		FirstName: "Emp", LastName: username, Password: "pw", Specialty: "printers",
	})
	require.NoError(t, err)
	return &auth.Principal{User: account.User}, account.Employee
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, status, domainErr.HTTPStatus)
}

func ptr[T any](v T) *T { return &v }
