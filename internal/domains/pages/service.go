package pages

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"novinky-backend/internal/domains/article/model"
	"novinky-backend/internal/domains/article/repository"
	"novinky-backend/internal/shared/validation"
	"novinky-backend/pkg/logger"
)

const (
	categoryPageSize = 20
	newsPageSize     = 30
	newestCount      = 10
	mostReadCount    = 10
	searchLimit      = 50
)

// Service regenerates static pages lazily. Aggregate pages track their
// validity in the CacheIndex, article pages in the validity table.
// Stale pages are re-rendered by the first reader; everyone else gets
// the file on disk.
type Service struct {
	articles repository.ArticleRepository
	validity repository.ValidityRepository
	index    *CacheIndex
	header   *Header
	renderer Renderer
	webRoot  string
}

func NewService(
	articles repository.ArticleRepository,
	validity repository.ValidityRepository,
	index *CacheIndex,
	header *Header,
	renderer Renderer,
	webRoot string,
) *Service {
	return &Service{
		articles: articles,
		validity: validity,
		index:    index,
		header:   header,
		renderer: renderer,
		webRoot:  webRoot,
	}
}

// Index exposes the cache index for publish-side invalidation.
func (s *Service) Index() *CacheIndex {
	return s.index
}

// PagePath returns the static file path of an aggregate page.
func (s *Service) PagePath(page Page) string {
	return filepath.Join(s.webRoot, string(page)+".html")
}

// ArticlePath returns the static file path of an article page. The
// slug already carries the .html suffix.
func (s *Service) ArticlePath(slug string) string {
	return filepath.Join(s.webRoot, slug)
}

// EnsurePage makes sure the static file of an aggregate page is
// current and returns its path. Stale pages are rebuilt under the
// page's regeneration lock so concurrent readers render once.
func (s *Service) EnsurePage(ctx context.Context, page Page) (string, error) {
	path := s.PagePath(page)
	if s.index.Valid(page) {
		return path, nil
	}

	unlock := s.index.LockPage(page)
	defer unlock()

	// another reader may have rebuilt the page while we waited
	if s.index.Valid(page) {
		return path, nil
	}

	html, err := s.renderPage(ctx, page)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return "", fmt.Errorf("failed to write page file: %w", err)
	}

	s.index.Validate(page)
	return path, nil
}

// EnsureArticle makes sure the static file of an article page is
// current and returns its path. Slugs that were never published return
// ErrArticleNotFound without touching the filesystem.
func (s *Service) EnsureArticle(ctx context.Context, slug string) (string, error) {
	status, err := s.validity.Status(ctx, slug)
	if err != nil {
		return "", err
	}

	switch status {
	case model.ValidityDoesNotExist:
		return "", model.ErrArticleNotFound
	case model.ValidityValid:
		return s.ArticlePath(slug), nil
	}

	unlock := s.index.LockSlug(slug)
	defer unlock()

	status, err = s.validity.Status(ctx, slug)
	if err != nil {
		return "", err
	}
	if status == model.ValidityValid {
		return s.ArticlePath(slug), nil
	}

	if err := s.RegenerateArticle(ctx, slug); err != nil {
		return "", err
	}
	if err := s.validity.SetValid(ctx, slug); err != nil {
		return "", err
	}
	return s.ArticlePath(slug), nil
}

// RegenerateArticle renders an article page and overwrites its static
// file. The validity flag is left to the caller.
func (s *Service) RegenerateArticle(ctx context.Context, slug string) error {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	related, err := s.articles.Related(ctx, article.RelatedSlugs)
	if err != nil {
		return err
	}
	mostRead, err := s.articles.MostRead(ctx, mostReadCount)
	if err != nil {
		return err
	}

	payload := ArticlePayload{
		Header:   s.header.Values(),
		Article:  article,
		Related:  related,
		MostRead: mostRead,
	}
	html, err := s.renderer.Render(TemplateArticle, payload)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.ArticlePath(slug), html, 0o644); err != nil {
		return fmt.Errorf("failed to write article file: %w", err)
	}
	return nil
}

// CountView bumps the view counter without delaying the response.
func (s *Service) CountView(slug string) {
	go func() {
		if err := s.articles.IncrementViews(context.Background(), slug); err != nil {
			logger.Error("failed to increment views for "+slug, err)
		}
	}()
}

// Search validates the query and renders the result page live. Search
// results are never cached as static files.
func (s *Service) Search(ctx context.Context, query string) ([]byte, error) {
	if err := validation.SearchQuery(query); err != nil {
		return nil, model.NewFieldError("q", err)
	}

	results, err := s.articles.ByWords(ctx, strings.Fields(query), searchLimit)
	if err != nil {
		return nil, err
	}

	payload := SearchPayload{
		Header:  s.header.Values(),
		Query:   query,
		Results: results,
	}
	return s.renderer.Render(TemplateSearch, payload)
}

func (s *Service) renderPage(ctx context.Context, page Page) ([]byte, error) {
	switch page {
	case PageIndex:
		return s.renderIndex(ctx)
	case PageNews:
		return s.renderNews(ctx)
	}

	category, err := model.ParseCategory(string(page))
	if err != nil {
		return nil, err
	}
	return s.renderCategory(ctx, category)
}

func (s *Service) renderIndex(ctx context.Context) ([]byte, error) {
	top, err := s.articles.TopThree(ctx)
	if err != nil {
		return nil, err
	}
	newest, err := s.articles.Newest(ctx, newestCount)
	if err != nil {
		return nil, err
	}
	mostRead, err := s.articles.MostRead(ctx, mostReadCount)
	if err != nil {
		return nil, err
	}

	payload := IndexPayload{
		Header:   s.header.Values(),
		Newest:   newest,
		MostRead: mostRead,
	}
	if len(top) > 0 {
		payload.Hero = &top[0]
		payload.Secondary = top[1:]
	}
	return s.renderer.Render(TemplateIndex, payload)
}

func (s *Service) renderNews(ctx context.Context) ([]byte, error) {
	articles, err := s.articles.Newest(ctx, newsPageSize)
	if err != nil {
		return nil, err
	}
	mostRead, err := s.articles.MostRead(ctx, mostReadCount)
	if err != nil {
		return nil, err
	}

	payload := NewsPayload{
		Header:   s.header.Values(),
		Articles: articles,
		MostRead: mostRead,
	}
	return s.renderer.Render(TemplateNews, payload)
}

func (s *Service) renderCategory(ctx context.Context, category model.Category) ([]byte, error) {
	articles, err := s.articles.ByCategory(ctx, category, categoryPageSize)
	if err != nil {
		return nil, err
	}
	mostRead, err := s.articles.MostRead(ctx, mostReadCount)
	if err != nil {
		return nil, err
	}

	payload := CategoryPayload{
		Header:   s.header.Values(),
		Category: category,
		Display:  category.Display(),
		Articles: articles,
		MostRead: mostRead,
	}
	return s.renderer.Render(TemplateCategory, payload)
}
