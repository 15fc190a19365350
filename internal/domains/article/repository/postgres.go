package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"novinky-backend/internal/domains/article/model"
	"novinky-backend/pkg/cache"
)

const (
	articleCacheKeyPrefix = "article:"
	articleCacheTTL       = 10 * time.Minute
)

const articleColumns = `
  slug, title, author, created_by, created_at, date_display,
  text_html, short_text_html, mini_text, category,
  image_820, image_440, image_288, image_50, image_desc,
  video_path, audio_path, has_video, has_audio,
  related_slugs, is_main, is_exclusive, views
`

const thumbnailColumns = `slug, title, short_text_html, image_288, image_440, is_exclusive`

// postgresArticleRepository implements ArticleRepository.
// Uses pgxpool for PostgreSQL connection management with a Redis
// read-through cache on single-article lookups.
type postgresArticleRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresArticleRepository creates a new article repository instance.
// Dependency injection pattern - receives pool from container.
func NewPostgresArticleRepository(pool *pgxpool.Pool, cache cache.Cache) ArticleRepository {
	return &postgresArticleRepository{
		pool:  pool,
		cache: cache,
	}
}

// Create inserts an article. Publishing under an already used slug
// overwrites the stored row.
func (r *postgresArticleRepository) Create(ctx context.Context, a *model.Article) error {
	query := `
    INSERT INTO articles (
      slug, title, author, created_by, created_at, date_display,
      text_html, short_text_html, mini_text, category,
      image_820, image_440, image_288, image_50, image_desc,
      video_path, audio_path, has_video, has_audio,
      related_slugs, is_main, is_exclusive, views
    )
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
            $15, $16, $17, $18, $19, $20, $21, $22, 0)
    ON CONFLICT (slug) DO UPDATE SET
      title = EXCLUDED.title,
      author = EXCLUDED.author,
      created_by = EXCLUDED.created_by,
      created_at = EXCLUDED.created_at,
      date_display = EXCLUDED.date_display,
      text_html = EXCLUDED.text_html,
      short_text_html = EXCLUDED.short_text_html,
      mini_text = EXCLUDED.mini_text,
      category = EXCLUDED.category,
      image_820 = EXCLUDED.image_820,
      image_440 = EXCLUDED.image_440,
      image_288 = EXCLUDED.image_288,
      image_50 = EXCLUDED.image_50,
      image_desc = EXCLUDED.image_desc,
      video_path = EXCLUDED.video_path,
      audio_path = EXCLUDED.audio_path,
      has_video = EXCLUDED.has_video,
      has_audio = EXCLUDED.has_audio,
      related_slugs = EXCLUDED.related_slugs,
      is_main = EXCLUDED.is_main,
      is_exclusive = EXCLUDED.is_exclusive
  `

	related := a.RelatedSlugs
	if related == nil {
		related = []string{}
	}

	_, err := r.pool.Exec(ctx, query,
		a.Slug, a.Title, a.Author, a.CreatedBy, a.CreatedAt, a.DateDisplay,
		a.TextHTML, a.ShortTextHTML, a.MiniText, string(a.Category),
		a.Image820, a.Image440, a.Image288, a.Image50, a.ImageDesc,
		a.VideoPath, a.AudioPath, a.HasVideo, a.HasAudio,
		related, a.IsMain, a.IsExclusive,
	)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	r.invalidate(ctx, a.Slug)
	return nil
}

// GetBySlug retrieves a single article by slug.
func (r *postgresArticleRepository) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	cacheKey := articleCacheKeyPrefix + slug
	var cached model.Article
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + articleColumns + ` FROM articles WHERE slug = $1`

	row := r.pool.QueryRow(ctx, query, slug)
	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, a, articleCacheTTL)
	return a, nil
}

// ByCategory returns thumbnails of a category, newest first.
func (r *postgresArticleRepository) ByCategory(ctx context.Context, category model.Category, limit int) ([]model.Thumbnail, error) {
	query := `
    SELECT ` + thumbnailColumns + `
    FROM articles
    WHERE category = $1
    ORDER BY created_at DESC
    LIMIT $2
  `

	rows, err := r.pool.Query(ctx, query, string(category), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles by category: %w", err)
	}
	defer rows.Close()

	return scanThumbnails(rows)
}

// ByUsername returns thumbnails of articles created by the given account.
func (r *postgresArticleRepository) ByUsername(ctx context.Context, username string, limit int) ([]model.Thumbnail, error) {
	query := `
    SELECT ` + thumbnailColumns + `
    FROM articles
    WHERE created_by = $1
    ORDER BY created_at DESC
    LIMIT $2
  `

	rows, err := r.pool.Query(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles by username: %w", err)
	}
	defer rows.Close()

	return scanThumbnails(rows)
}

// Newest returns the newest thumbnails across all categories.
func (r *postgresArticleRepository) Newest(ctx context.Context, limit int) ([]model.Thumbnail, error) {
	query := `
    SELECT ` + thumbnailColumns + `
    FROM articles
    ORDER BY created_at DESC
    LIMIT $1
  `

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list newest articles: %w", err)
	}
	defer rows.Close()

	return scanThumbnails(rows)
}

// TopThree returns the three newest articles flagged for the front page.
func (r *postgresArticleRepository) TopThree(ctx context.Context) ([]model.Thumbnail, error) {
	query := `
    SELECT ` + thumbnailColumns + `
    FROM articles
    WHERE is_main = TRUE
    ORDER BY created_at DESC
    LIMIT 3
  `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list front page articles: %w", err)
	}
	defer rows.Close()

	return scanThumbnails(rows)
}

// MostRead returns articles ordered by view count, most read first.
func (r *postgresArticleRepository) MostRead(ctx context.Context, limit int) ([]model.MostReadItem, error) {
	query := `
    SELECT slug, title, image_50, views
    FROM articles
    ORDER BY views DESC
    LIMIT $1
  `

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list most read articles: %w", err)
	}
	defer rows.Close()

	var items []model.MostReadItem
	for rows.Next() {
		var item model.MostReadItem
		if err := rows.Scan(&item.Slug, &item.Title, &item.Image50, &item.Views); err != nil {
			return nil, fmt.Errorf("failed to scan most read row: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating most read rows: %w", err)
	}

	return items, nil
}

// ByWords returns thumbnails whose body text contains any of the
// given words as a whole word, case-insensitively. Titles are not
// searched.
func (r *postgresArticleRepository) ByWords(ctx context.Context, words []string, limit int) ([]model.Thumbnail, error) {
	if len(words) == 0 {
		return nil, nil
	}

	query, args := byWordsQuery(words, limit)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}
	defer rows.Close()

	return scanThumbnails(rows)
}

// byWordsQuery builds a parameterized union of whole-word matches
// against the body text. The words only ever reach Postgres as bound
// parameters; `\m`/`\M` anchor the match at word boundaries.
func byWordsQuery(words []string, limit int) (string, []interface{}) {
	conditions := make([]string, 0, len(words))
	args := make([]interface{}, 0, len(words)+1)
	for i, word := range words {
		conditions = append(conditions,
			fmt.Sprintf("text_html ~* ('\\m' || $%d || '\\M')", i+1))
		args = append(args, word)
	}
	args = append(args, limit)

	query := `
    SELECT ` + thumbnailColumns + `
    FROM articles
    WHERE ` + strings.Join(conditions, " OR ") + `
    ORDER BY created_at DESC
    LIMIT $` + fmt.Sprint(len(words)+1) + `
  `
	return query, args
}

// Related resolves stored related slugs into thumbnails, preserving order.
func (r *postgresArticleRepository) Related(ctx context.Context, slugs []string) ([]model.Thumbnail, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	query := `
    SELECT ` + thumbnailColumns + `
    FROM articles
    WHERE slug = ANY($1)
  `

	rows, err := r.pool.Query(ctx, query, slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to get related articles: %w", err)
	}
	defer rows.Close()

	thumbs, err := scanThumbnails(rows)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]model.Thumbnail, len(thumbs))
	for _, t := range thumbs {
		bySlug[t.Slug] = t
	}

	ordered := make([]model.Thumbnail, 0, len(thumbs))
	for _, slug := range slugs {
		if t, ok := bySlug[slug]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

// AddRelatedLink appends `to` to the related list of `from` unless
// already present.
func (r *postgresArticleRepository) AddRelatedLink(ctx context.Context, from, to string) error {
	query := `
    UPDATE articles
    SET related_slugs = array_append(related_slugs, $2)
    WHERE slug = $1 AND NOT ($2 = ANY(related_slugs))
  `

	if _, err := r.pool.Exec(ctx, query, from, to); err != nil {
		return fmt.Errorf("failed to add related link: %w", err)
	}

	r.invalidate(ctx, from)
	return nil
}

// IncrementViews bumps the view counter of a slug.
func (r *postgresArticleRepository) IncrementViews(ctx context.Context, slug string) error {
	query := `UPDATE articles SET views = views + 1 WHERE slug = $1`

	if _, err := r.pool.Exec(ctx, query, slug); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// Delete removes an article row.
func (r *postgresArticleRepository) Delete(ctx context.Context, slug string) error {
	query := `DELETE FROM articles WHERE slug = $1`

	if _, err := r.pool.Exec(ctx, query, slug); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	r.invalidate(ctx, slug)
	return nil
}

func (r *postgresArticleRepository) invalidate(ctx context.Context, slug string) {
	_ = r.cache.Delete(ctx, articleCacheKeyPrefix+slug)
}

func scanArticle(row pgx.Row) (*model.Article, error) {
	var a model.Article
	var category string
	err := row.Scan(
		&a.Slug,
		&a.Title,
		&a.Author,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.DateDisplay,
		&a.TextHTML,
		&a.ShortTextHTML,
		&a.MiniText,
		&category,
		&a.Image820,
		&a.Image440,
		&a.Image288,
		&a.Image50,
		&a.ImageDesc,
		&a.VideoPath,
		&a.AudioPath,
		&a.HasVideo,
		&a.HasAudio,
		&a.RelatedSlugs,
		&a.IsMain,
		&a.IsExclusive,
		&a.Views,
	)
	if err != nil {
		return nil, err
	}
	a.Category = model.Category(category)
	return &a, nil
}

func scanThumbnails(rows pgx.Rows) ([]model.Thumbnail, error) {
	var thumbs []model.Thumbnail
	for rows.Next() {
		var t model.Thumbnail
		if err := rows.Scan(&t.Slug, &t.Title, &t.ShortText, &t.Image288, &t.Image440, &t.IsExclusive); err != nil {
			return nil, fmt.Errorf("failed to scan thumbnail row: %w", err)
		}
		thumbs = append(thumbs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating thumbnail rows: %w", err)
	}
	return thumbs, nil
}
