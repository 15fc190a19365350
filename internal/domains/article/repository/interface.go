package repository

import (
	"context"

	"novinky-backend/internal/domains/article/model"
)

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	// Create inserts an article. An existing article with the same slug
	// is silently overwritten.
	Create(ctx context.Context, article *model.Article) error

	// GetBySlug retrieves a single article, including its related thumbnails.
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)

	// ByCategory returns thumbnails of a category, newest first.
	ByCategory(ctx context.Context, category model.Category, limit int) ([]model.Thumbnail, error)

	// ByUsername returns thumbnails of articles created by the given account.
	ByUsername(ctx context.Context, username string, limit int) ([]model.Thumbnail, error)

	// Newest returns the newest thumbnails across all categories.
	Newest(ctx context.Context, limit int) ([]model.Thumbnail, error)

	// TopThree returns the three newest front-page articles.
	TopThree(ctx context.Context) ([]model.Thumbnail, error)

	// MostRead returns articles ordered by view count.
	MostRead(ctx context.Context, limit int) ([]model.MostReadItem, error)

	// ByWords returns thumbnails whose body text contains any of the
	// given words as a whole word. An empty word list yields an empty
	// result.
	ByWords(ctx context.Context, words []string, limit int) ([]model.Thumbnail, error)

	// Related resolves the stored related slugs into thumbnails.
	Related(ctx context.Context, slugs []string) ([]model.Thumbnail, error)

	// AddRelatedLink appends `to` to the related list of `from`.
	AddRelatedLink(ctx context.Context, from, to string) error

	// IncrementViews bumps the view counter of a slug.
	IncrementViews(ctx context.Context, slug string) error

	// Delete removes an article row. Missing rows are not an error.
	Delete(ctx context.Context, slug string) error
}

// ValidityRepository tracks which generated article pages are current.
type ValidityRepository interface {
	// Status reports whether a page exists and whether it is current.
	Status(ctx context.Context, slug string) (model.Validity, error)

	// CreateInvalid registers a freshly published slug as stale so the
	// first read renders its page. Republished slugs are flipped back
	// to stale the same way.
	CreateInvalid(ctx context.Context, slug string) error

	SetValid(ctx context.Context, slug string) error
	SetInvalid(ctx context.Context, slug string) error

	// Delete removes the validity row so future reads report DoesNotExist.
	Delete(ctx context.Context, slug string) error
}
