package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/repairdesk/repairs-service/internal/domain"
)

// UserRepository defines persistence access for identity records and the
// account profiles created alongside them.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateCustomerAccount(ctx context.Context, user *domain.User, customer *domain.Customer) error
	CreateEmployeeAccount(ctx context.Context, user *domain.User, employee *domain.Employee) error
}

type userRepository struct {
	db DB
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name, is_staff, date_joined`

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.IsStaff,
		&user.DateJoined,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username=$1)`, username)
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`, email)
}

func (r *userRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	if err := r.db.QueryRow(ctx, query, arg).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

func (r *userRepository) CreateCustomerAccount(ctx context.Context, user *domain.User, customer *domain.Customer) error {
	user.IsStaff = false
	return r.createAccount(ctx, user, func(tx pgx.Tx) error {
		customer.UserID = user.ID
		customer.FirstName, customer.LastName = user.FirstName, user.LastName
		return tx.QueryRow(ctx,
			`INSERT INTO customers (user_id, address) VALUES ($1,$2) RETURNING id`,
			customer.UserID, customer.Address,
		).Scan(&customer.ID)
	})
}

func (r *userRepository) CreateEmployeeAccount(ctx context.Context, user *domain.User, employee *domain.Employee) error {
	user.IsStaff = true
	return r.createAccount(ctx, user, func(tx pgx.Tx) error {
		employee.UserID = user.ID
		employee.FirstName, employee.LastName = user.FirstName, user.LastName
		return tx.QueryRow(ctx,
			`INSERT INTO employees (user_id, specialty) VALUES ($1,$2) RETURNING id`,
			employee.UserID, employee.Specialty,
		).Scan(&employee.ID)
	})
}

// createAccount writes the user and its profile row in one transaction.
func (r *userRepository) createAccount(ctx context.Context, user *domain.User, insertProfile func(pgx.Tx) error) (err error) {
	const query = `
        INSERT INTO users (username, email, password_hash, first_name, last_name, is_staff)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, date_joined`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = tx.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.IsStaff,
	).Scan(&user.ID, &user.DateJoined); err != nil {
		return err
	}
	if err = insertProfile(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
