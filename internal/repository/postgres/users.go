package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/core/port"
)

var userColumns = []string{
	"id",
	"name",
	"last_name",
	"email",
	"phone",
	"user_name",
	"password",
	"id_role",
	"id_status",
}

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	exec    pgExecutor
	hasher  port.PasswordHasher
	builder squirrel.StatementBuilderType
}

// NewUserRepository wires a PostgreSQL-backed user repository. hasher is used by
// ValidateCredentials to compare the stored hash.
func NewUserRepository(exec pgExecutor, hasher port.PasswordHasher) *UserRepository {
	return &UserRepository{
		exec:    exec,
		hasher:  hasher,
		builder: newBuilder(),
	}
}

// Create inserts a new user row and returns it with the generated identifier.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	stmt, args, err := r.builder.Insert(usersTable).
		Columns("name", "last_name", "email", "phone", "user_name", "password", "id_role", "id_status").
		Values(
			user.Name,
			user.LastName,
			user.Email,
			nullableString(user.Phone),
			user.UserName,
			user.PasswordHash,
			user.RoleID,
			user.StatusID,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert user sql: %w", err)
	}

	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&user.ID); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

// FindByID retrieves a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id}, "by id")
}

// FindByEmail retrieves a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email}, "by email")
}

// FindByEmailOrUserName returns the first user matching either identifier.
func (r *UserRepository) FindByEmailOrUserName(ctx context.Context, email, userName string) (*domain.User, error) {
	return r.findOne(ctx, squirrel.Or{
		squirrel.Eq{"email": email},
		squirrel.Eq{"user_name": userName},
	}, "by email or user name")
}

// ValidateCredentials loads the user by email and verifies the password.
// A missing user and a wrong password both yield (nil, nil).
func (r *UserRepository) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	ok, err := r.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, nil
	}

	return user, nil
}

func (r *UserRepository) findOne(ctx context.Context, where squirrel.Sqlizer, label string) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user %s sql: %w", label, err)
	}

	var (
		user  domain.User
		phone sql.NullString
	)
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&user.ID,
		&user.Name,
		&user.LastName,
		&user.Email,
		&phone,
		&user.UserName,
		&user.PasswordHash,
		&user.RoleID,
		&user.StatusID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user %s: %w", label, err)
	}
	user.Phone = stringPtr(phone)

	return &user, nil
}

var _ port.UserRepository = (*UserRepository)(nil)
