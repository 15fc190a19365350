package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"novinky-backend/internal/domains/article/model"
)

// postgresValidityRepository implements ValidityRepository over the
// article_validity table. A missing row means the page was never
// generated.
type postgresValidityRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresValidityRepository creates a new validity repository instance.
func NewPostgresValidityRepository(pool *pgxpool.Pool) ValidityRepository {
	return &postgresValidityRepository{pool: pool}
}

// Status reports the cache state of a rendered article page.
func (r *postgresValidityRepository) Status(ctx context.Context, slug string) (model.Validity, error) {
	query := `SELECT valid FROM article_validity WHERE slug = $1`

	var valid bool
	err := r.pool.QueryRow(ctx, query, slug).Scan(&valid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ValidityDoesNotExist, nil
		}
		return model.ValidityDoesNotExist, fmt.Errorf("failed to get validity: %w", err)
	}

	if valid {
		return model.ValidityValid, nil
	}
	return model.ValidityInvalid, nil
}

// CreateInvalid registers a published slug as stale. The page itself
// is only rendered by the first read, so the record must not claim a
// file that does not exist yet; a republish flips an existing record
// back to stale for the same reason.
func (r *postgresValidityRepository) CreateInvalid(ctx context.Context, slug string) error {
	query := `
    INSERT INTO article_validity (slug, valid)
    VALUES ($1, FALSE)
    ON CONFLICT (slug) DO UPDATE SET valid = FALSE
  `

	if _, err := r.pool.Exec(ctx, query, slug); err != nil {
		return fmt.Errorf("failed to create validity record: %w", err)
	}
	return nil
}

func (r *postgresValidityRepository) SetValid(ctx context.Context, slug string) error {
	return r.setValid(ctx, slug, true)
}

func (r *postgresValidityRepository) SetInvalid(ctx context.Context, slug string) error {
	return r.setValid(ctx, slug, false)
}

func (r *postgresValidityRepository) setValid(ctx context.Context, slug string, valid bool) error {
	query := `UPDATE article_validity SET valid = $2 WHERE slug = $1`

	if _, err := r.pool.Exec(ctx, query, slug, valid); err != nil {
		return fmt.Errorf("failed to update validity: %w", err)
	}
	return nil
}

// Delete removes the validity row. Missing rows are not an error.
func (r *postgresValidityRepository) Delete(ctx context.Context, slug string) error {
	query := `DELETE FROM article_validity WHERE slug = $1`

	if _, err := r.pool.Exec(ctx, query, slug); err != nil {
		return fmt.Errorf("failed to delete validity record: %w", err)
	}
	return nil
}
