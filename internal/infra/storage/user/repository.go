package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/pkg/dbmetrics"
	"github.com/ZHANGLudovic/Web-Project/pkg/psqlbuilder"
)

const usersTable = "users"

var userColumns = []string{
	"id", "email", "username", "password_hash", "role", "created_at",
}

// Create создаёт нового пользователя и возвращает его ID
func (r *Repository) Create(ctx context.Context, u *domain.User) (int64, error) {
	query, args, err := psqlbuilder.Insert(usersTable).
		Columns("email", "username", "password_hash", "role").
		Values(u.Email, u.Username, u.PasswordHash, u.Role).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Create - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: Create - email %q", ErrDuplicateUser, u.Email)
		}
		return 0, fmt.Errorf("%w: Create - insert user: %v", ErrExecQuery, err)
	}

	return id, nil
}

// GetByID возвращает пользователя по его идентификатору
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, fmt.Sprintf("user %d", id))
}

// GetByEmail возвращает пользователя по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email}, fmt.Sprintf("email %q", email))
}

func (r *Repository) getOne(ctx context.Context, where sq.Eq, subject string) (*domain.User, error) {
	query, args, err := psqlbuilder.Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	var u domain.User
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: getOne - %s", ErrUserNotFound, subject)
		}
		return nil, fmt.Errorf("%w: getOne - scan user: %v", ErrScanRow, err)
	}

	return &u, nil
}

// Update обновляет изменяемые поля пользователя
func (r *Repository) Update(ctx context.Context, id int64, username, email *string) (*domain.User, error) {
	builder := psqlbuilder.Update(usersTable).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, email, username, password_hash, role, created_at")

	if username != nil {
		builder = builder.Set("username", *username)
	}
	if email != nil {
		builder = builder.Set("email", *email)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	var u domain.User
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: Update - user %d", ErrUserNotFound, id)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Update - user %d", ErrDuplicateUser, id)
		}
		return nil, fmt.Errorf("%w: Update - update user: %v", ErrExecQuery, err)
	}

	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
