package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/repairdesk/repairs-service/internal/auth"
	"github.com/repairdesk/repairs-service/internal/config"
	"github.com/repairdesk/repairs-service/internal/domain"
	"github.com/repairdesk/repairs-service/internal/repository"
	apperrors "github.com/repairdesk/repairs-service/pkg/util/errorutil"
)

// Account types accepted at registration.
const (
	AccountTypeCustomer = "customer"
	AccountTypeEmployee = "employee"
)

const (
	minUsernameLength = 3
	maxProfileField   = 155
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	AccountType string
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	Address     string
	Specialty   string
}

// Account is a freshly created user with its profile.
type Account struct {
	User     *domain.User
	Customer *domain.Customer
	Employee *domain.Employee
}

// AuthResult is returned by a successful registration.
type AuthResult struct {
	Token     string
	Staff     bool
	ExpiresAt time.Time
}

// LoginResult reports a login attempt. Bad credentials are not an error.
type LoginResult struct {
	Valid     bool
	Token     string
	Staff     bool
	ExpiresAt time.Time
}

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users     repository.UserRepository
	tokenMgr  *auth.TokenManager
	revoked   *auth.RevocationStore
	passwords auth.PasswordHasher
	now       func() time.Time
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo        repository.UserRepository
	RevocationStore *auth.RevocationStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:     deps.UserRepo,
		tokenMgr:  auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		revoked:   deps.RevocationStore,
		passwords: auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		now:       time.Now,
	}
}

// Register creates the account and issues a token bound to it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	account, err := s.CreateAccount(ctx, input)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(account.User.ID, account.User.IsStaff)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{Token: token, Staff: account.User.IsStaff, ExpiresAt: exp}, nil
}

// CreateAccount validates the form and writes the user together with its
// customer or employee profile.
func (s *AuthService) CreateAccount(ctx context.Context, input RegisterInput) (*Account, error) {
	input = normalizeRegistration(input)
	if err := s.validateRegistration(ctx, input); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}
	account := &Account{User: user}

	switch input.AccountType {
	case AccountTypeCustomer:
		account.Customer = &domain.Customer{Address: input.Address}
		err = s.users.CreateCustomerAccount(ctx, user, account.Customer)
	default:
		account.Employee = &domain.Employee{Specialty: input.Specialty}
		err = s.users.CreateEmployeeAccount(ctx, user, account.Employee)
	}
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewValidationError("An account with that username or email already exists", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

func normalizeRegistration(input RegisterInput) RegisterInput {
	input.AccountType = strings.TrimSpace(input.AccountType)
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Address = strings.TrimSpace(input.Address)
	input.Specialty = strings.TrimSpace(input.Specialty)
	return input
}

func (s *AuthService) validateRegistration(ctx context.Context, input RegisterInput) error {
	for _, field := range []string{input.AccountType, input.Username, input.Email, input.FirstName, input.LastName, input.Password} {
		if field == "" {
			return apperrors.NewValidationError("You must provide username, email, password, first_name, last_name and account_type", nil)
		}
	}

	if utf8.RuneCountInString(input.Username) < minUsernameLength {
		return apperrors.NewValidationError("Username must be at least 3 characters", nil)
	}

	switch input.AccountType {
	case AccountTypeCustomer:
		if input.Address == "" {
			return apperrors.NewValidationError("You must provide an address for a customer", nil)
		}
		if utf8.RuneCountInString(input.Address) > maxProfileField {
			return apperrors.NewValidationError("Address must be at most 155 characters", nil)
		}
	case AccountTypeEmployee:
		if input.Specialty == "" {
			return apperrors.NewValidationError("You must provide a specialty for an employee", nil)
		}
		if utf8.RuneCountInString(input.Specialty) > maxProfileField {
			return apperrors.NewValidationError("Specialty must be at most 155 characters", nil)
		}
	default:
		return apperrors.NewValidationError("Invalid account type. Valid values are 'customer' or 'employee'",
			map[string]any{"account_type": input.AccountType})
	}

	exists, err := s.users.UsernameExists(ctx, input.Username)
	if err != nil {
		return apperrors.MapError(err)
	}
	if exists {
		return apperrors.NewValidationError("An account with that username already exists", nil)
	}

	exists, err = s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return apperrors.MapError(err)
	}
	if exists {
		return apperrors.NewValidationError("An account with that email address already exists", nil)
	}
	return nil
}

// Login authenticates a user by username and password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return &LoginResult{Valid: false}, nil
		}
		return nil, apperrors.MapError(err)
	}
	if !s.passwords.Matches(user.PasswordHash, password) {
		return &LoginResult{Valid: false}, nil
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.IsStaff)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Valid: true, Token: token, Staff: user.IsStaff, ExpiresAt: exp}, nil
}

// Logout revokes the presented token until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.NewUnauthorized("missing token")
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.TTL(s.now())); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("revoke token: %w", err))
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
