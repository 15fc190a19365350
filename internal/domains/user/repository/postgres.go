package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"novinky-backend/internal/domains/user/model"
)

// UserRepository defines persistence operations for editorial accounts.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, username string) error
}

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new user repository instance.
func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
    SELECT username, author_name, password_hash, role, must_change_password
    FROM users
    WHERE username = $1
  `

	var u model.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.Username,
		&u.AuthorName,
		&u.PasswordHash,
		&u.Role,
		&u.MustChangePassword,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
    INSERT INTO users (username, author_name, password_hash, role, must_change_password)
    VALUES ($1, $2, $3, $4, $5)
  `

	_, err := r.pool.Exec(ctx, query,
		user.Username, user.AuthorName, user.PasswordHash, user.Role, user.MustChangePassword)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) Delete(ctx context.Context, username string) error {
	query := `DELETE FROM users WHERE username = $1`

	result, err := r.pool.Exec(ctx, query, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
