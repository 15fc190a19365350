package service

import (
	"context"
	"fmt"
	"time"

	"novinky-backend/internal/domains/article/model"
	"novinky-backend/internal/domains/article/repository"
	"novinky-backend/internal/domains/pages"
	"novinky-backend/pkg/logger"
)

// MediaStore is the slice of the media pipeline the publish flow needs.
type MediaStore interface {
	ProcessImage(ctx context.Context, data []byte, base, ext string) ([]string, error)
	ProcessAudio(ctx context.Context, data []byte, name string) error
	ProcessVideo(ctx context.Context, data []byte, name string) error
	Remove(ctx context.Context, name string) error
}

// PublishService runs the publish pipeline: derive the article from
// the upload, write media derivatives, persist, then fan out
// invalidations. Each side effect registers a compensation; on failure
// the compensations run in reverse so no partial publish survives.
type PublishService struct {
	articles repository.ArticleRepository
	validity repository.ValidityRepository
	media    MediaStore
	index    *pages.CacheIndex
	now      func() time.Time
}

func NewPublishService(
	articles repository.ArticleRepository,
	validity repository.ValidityRepository,
	media MediaStore,
	index *pages.CacheIndex,
) *PublishService {
	loc, err := time.LoadLocation("Europe/Prague")
	if err != nil {
		loc = time.UTC
	}
	return &PublishService{
		articles: articles,
		validity: validity,
		media:    media,
		index:    index,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

// Publish turns a parsed upload into a live article. Nothing is
// rendered here: the article page is registered stale so the first
// read builds it. Every related article page is flagged stale too,
// and the affected aggregate pages are invalidated.
func (s *PublishService) Publish(ctx context.Context, upload *model.ArticleUpload, createdBy string) (*model.Article, error) {
	category, err := model.ParseCategory(upload.CategoryRaw)
	if err != nil {
		return nil, err
	}

	article := s.derive(upload, category, createdBy)

	var compensations []func()
	rollback := func() {
		for i := len(compensations) - 1; i >= 0; i-- {
			compensations[i]()
		}
	}

	imageFiles, err := s.media.ProcessImage(ctx, upload.ImageData, upload.BaseName, upload.ImageExt)
	if err != nil {
		return nil, err
	}
	compensations = append(compensations, func() {
		for _, name := range imageFiles {
			s.removeQuietly(name)
		}
	})

	if upload.HasAudio {
		if err := s.media.ProcessAudio(ctx, upload.AudioData, article.AudioPath); err != nil {
			rollback()
			return nil, err
		}
		name := article.AudioPath
		compensations = append(compensations, func() { s.removeQuietly(name) })
	}

	if upload.HasVideo {
		if err := s.media.ProcessVideo(ctx, upload.VideoData, article.VideoPath); err != nil {
			rollback()
			return nil, err
		}
		name := article.VideoPath
		compensations = append(compensations, func() { s.removeQuietly(name) })
	}

	if err := s.articles.Create(ctx, article); err != nil {
		rollback()
		return nil, err
	}
	compensations = append(compensations, func() {
		if err := s.articles.Delete(context.Background(), article.Slug); err != nil {
			logger.Error("failed to retract article during rollback", err)
		}
	})

	if err := s.validity.CreateInvalid(ctx, article.Slug); err != nil {
		rollback()
		return nil, err
	}
	compensations = append(compensations, func() {
		if err := s.validity.Delete(context.Background(), article.Slug); err != nil {
			logger.Error("failed to retract validity record during rollback", err)
		}
	})

	for _, related := range upload.RelatedSlugs {
		if related == article.Slug {
			continue
		}
		if err := s.linkRelated(ctx, article.Slug, related); err != nil {
			rollback()
			return nil, err
		}
	}

	s.index.Invalidate(pages.PageIndex, pages.PageNews, pages.CategoryPage(category))
	return article, nil
}

// Unpublish removes an article from the store so reads return 404.
// The static HTML file and media derivatives stay on disk; every
// aggregate page is invalidated rather than working out which ones
// referenced the article.
func (s *PublishService) Unpublish(ctx context.Context, slug string) error {
	if err := s.articles.Delete(ctx, slug); err != nil {
		return err
	}
	if err := s.validity.Delete(ctx, slug); err != nil {
		return err
	}
	s.index.InvalidateAll()
	return nil
}

// linkRelated wires both directions of a relation and flags the other
// article's page stale so its related strip picks up the new link.
func (s *PublishService) linkRelated(ctx context.Context, slug, related string) error {
	if err := s.articles.AddRelatedLink(ctx, slug, related); err != nil {
		return err
	}
	if err := s.articles.AddRelatedLink(ctx, related, slug); err != nil {
		return err
	}
	if err := s.validity.SetInvalid(ctx, related); err != nil {
		return fmt.Errorf("failed to invalidate related article %s: %w", related, err)
	}
	return nil
}

func (s *PublishService) derive(upload *model.ArticleUpload, category model.Category, createdBy string) *model.Article {
	now := s.now()

	article := &model.Article{
		Slug:          upload.BaseName + ".html",
		Title:         upload.Title,
		Author:        upload.Author,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		DateDisplay:   pages.FormatCzechDate(now),
		TextHTML:      ProcessText(upload.TextRaw),
		ShortTextHTML: ProcessShortText(upload.ShortTextRaw),
		MiniText:      upload.MiniTextRaw,
		Category:      category,
		Image820:      fmt.Sprintf("%s_image_820.%s", upload.BaseName, upload.ImageExt),
		Image440:      fmt.Sprintf("%s_image_440.%s", upload.BaseName, upload.ImageExt),
		Image288:      fmt.Sprintf("%s_image_288.%s", upload.BaseName, upload.ImageExt),
		Image50:       fmt.Sprintf("%s_image_50.%s", upload.BaseName, upload.ImageExt),
		ImageDesc:     upload.ImageDesc,
		RelatedSlugs:  upload.RelatedSlugs,
		IsMain:        upload.IsMain,
		IsExclusive:   upload.IsExclusive,
	}

	if upload.HasAudio {
		article.HasAudio = true
		article.AudioPath = fmt.Sprintf("%s_audio.%s", upload.BaseName, upload.AudioExt)
	}
	if upload.HasVideo {
		article.HasVideo = true
		article.VideoPath = fmt.Sprintf("%s_video.%s", upload.BaseName, upload.VideoExt)
	}
	return article
}

func (s *PublishService) removeQuietly(name string) {
	if err := s.media.Remove(context.Background(), name); err != nil {
		logger.Error("failed to remove media file during rollback: "+name, err)
	}
}
