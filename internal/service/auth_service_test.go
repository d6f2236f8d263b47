package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repairdesk/repairs-service/internal/auth"
	"github.com/repairdesk/repairs-service/internal/repository/repotest"
)

func validCustomer() RegisterInput {
	return RegisterInput{
		AccountType: AccountTypeCustomer,
		Username:    "alice",
		Email:       "alice@example.com",
		FirstName:   "Alice",
		LastName:    "Smith",
		Password:    "s3cret",
		Address:     "12 Elm St",
	}
}

func TestAuthService_RegisterCustomerIssuesUsableToken(t *testing.T) {
	f := newFixture(t)

	result, err := f.auth.Register(context.Background(), validCustomer())
	require.NoError(t, err)
	assert.False(t, result.Staff)

	claims, err := f.auth.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	user, err := f.store.Users().GetByID(context.Background(), claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	customer, err := f.store.Customers().GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "12 Elm St", customer.Address)
	assert.Equal(t, "Alice Smith", customer.FullName())
}

func TestAuthService_RegisterEmployeeIsStaff(t *testing.T) {
	f := newFixture(t)
	input := validCustomer()
	input.AccountType = AccountTypeEmployee
	input.Address = ""
	input.Specialty = "printers"

	result, err := f.auth.Register(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, result.Staff)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*RegisterInput)
		message string
	}{
		{"missing email", func(in *RegisterInput) { in.Email = "" }, "You must provide username, email, password, first_name, last_name and account_type"},
		{"blank first name", func(in *RegisterInput) { in.FirstName = "   " }, "You must provide username, email, password, first_name, last_name and account_type"},
		{"short username", func(in *RegisterInput) { in.Username = "al" }, "Username must be at least 3 characters"},
		{"customer without address", func(in *RegisterInput) { in.Address = "" }, "You must provide an address for a customer"},
		{"employee without specialty", func(in *RegisterInput) { in.AccountType = AccountTypeEmployee }, "You must provide a specialty for an employee"},
		{"unknown account type", func(in *RegisterInput) { in.AccountType = "manager" }, "Invalid account type. Valid values are 'customer' or 'employee'"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			input := validCustomer()
			tc.mutate(&input)

			_, err := f.auth.Register(context.Background(), input)

			assertStatus(t, err, http.StatusBadRequest)
			assert.EqualError(t, err, tc.message)
		})
	}
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), validCustomer())
	require.NoError(t, err)

	_, err = f.auth.Register(context.Background(), validCustomer())
	assertStatus(t, err, http.StatusBadRequest)
	assert.EqualError(t, err, "An account with that username already exists")

	second := validCustomer()
	second.Username = "alice2"
	_, err = f.auth.Register(context.Background(), second)
	assertStatus(t, err, http.StatusBadRequest)
	assert.EqualError(t, err, "An account with that email address already exists")
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), validCustomer())
	require.NoError(t, err)

	result, err := f.auth.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.NotEmpty(t, result.Token)
	assert.False(t, result.Staff)

	result, err = f.auth.Login(context.Background(), "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Empty(t, result.Token)

	result, err = f.auth.Login(context.Background(), "nobody", "s3cret")
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestAuthService_LogoutRevokesUntilExpiry(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:        repotest.NewStore().Users(),
		RevocationStore: auth.NewRevocationStore(client),
	})
	token, _, err := svc.TokenManager().GenerateToken(1, false)
	require.NoError(t, err)
	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	svc.now = func() time.Time { return claims.ExpiresAt.Add(-time.Hour) }

	mock.ExpectSet("revoked_token:"+claims.ID, "1", time.Hour).SetVal("OK")

	require.NoError(t, svc.Logout(context.Background(), claims))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_LogoutSurfacesStoreFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:        repotest.NewStore().Users(),
		RevocationStore: auth.NewRevocationStore(client),
	})
	token, _, err := svc.TokenManager().GenerateToken(1, false)
	require.NoError(t, err)
	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	svc.now = func() time.Time { return claims.ExpiresAt.Add(-time.Hour) }

	mock.ExpectSet("revoked_token:"+claims.ID, "1", time.Hour).SetErr(errors.New("connection refused"))

	assertStatus(t, svc.Logout(context.Background(), claims), http.StatusInternalServerError)
}
