package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novinky-backend/internal/domains/article/model"
	"novinky-backend/internal/domains/pages"
)

type fakeArticleRepo struct {
	created   []*model.Article
	deleted   []string
	links     [][2]string
	createErr error
	linkErr   error
}

func (f *fakeArticleRepo) Create(ctx context.Context, a *model.Article) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, a)
	return nil
}

func (f *fakeArticleRepo) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].Slug == slug {
			return f.created[i], nil
		}
	}
	return nil, model.ErrArticleNotFound
}

func (f *fakeArticleRepo) ByCategory(ctx context.Context, c model.Category, limit int) ([]model.Thumbnail, error) {
	return nil, nil
}

func (f *fakeArticleRepo) ByUsername(ctx context.Context, username string, limit int) ([]model.Thumbnail, error) {
	return nil, nil
}

func (f *fakeArticleRepo) Newest(ctx context.Context, limit int) ([]model.Thumbnail, error) {
	return nil, nil
}

func (f *fakeArticleRepo) TopThree(ctx context.Context) ([]model.Thumbnail, error) {
	return nil, nil
}

func (f *fakeArticleRepo) MostRead(ctx context.Context, limit int) ([]model.MostReadItem, error) {
	return nil, nil
}

func (f *fakeArticleRepo) ByWords(ctx context.Context, words []string, limit int) ([]model.Thumbnail, error) {
	return nil, nil
}

func (f *fakeArticleRepo) Related(ctx context.Context, slugs []string) ([]model.Thumbnail, error) {
	return nil, nil
}

func (f *fakeArticleRepo) AddRelatedLink(ctx context.Context, from, to string) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	f.links = append(f.links, [2]string{from, to})
	return nil
}

func (f *fakeArticleRepo) IncrementViews(ctx context.Context, slug string) error { return nil }

func (f *fakeArticleRepo) Delete(ctx context.Context, slug string) error {
	f.deleted = append(f.deleted, slug)
	return nil
}

type fakeValidityRepo struct {
	valid     map[string]bool
	deleted   []string
	createErr error
}

func newFakeValidityRepo() *fakeValidityRepo {
	return &fakeValidityRepo{valid: make(map[string]bool)}
}

func (f *fakeValidityRepo) Status(ctx context.Context, slug string) (model.Validity, error) {
	v, ok := f.valid[slug]
	if !ok {
		return model.ValidityDoesNotExist, nil
	}
	if v {
		return model.ValidityValid, nil
	}
	return model.ValidityInvalid, nil
}

func (f *fakeValidityRepo) CreateInvalid(ctx context.Context, slug string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.valid[slug] = false
	return nil
}

func (f *fakeValidityRepo) SetValid(ctx context.Context, slug string) error {
	f.valid[slug] = true
	return nil
}

func (f *fakeValidityRepo) SetInvalid(ctx context.Context, slug string) error {
	f.valid[slug] = false
	return nil
}

func (f *fakeValidityRepo) Delete(ctx context.Context, slug string) error {
	delete(f.valid, slug)
	f.deleted = append(f.deleted, slug)
	return nil
}

type fakeMediaStore struct {
	written  []string
	removed  []string
	imageErr error
}

func (f *fakeMediaStore) ProcessImage(ctx context.Context, data []byte, base, ext string) ([]string, error) {
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	names := []string{
		base + "_image_820." + ext,
		base + "_image_50." + ext,
		base + "_image_288." + ext,
		base + "_image_440." + ext,
	}
	f.written = append(f.written, names...)
	return names, nil
}

func (f *fakeMediaStore) ProcessAudio(ctx context.Context, data []byte, name string) error {
	f.written = append(f.written, name)
	return nil
}

func (f *fakeMediaStore) ProcessVideo(ctx context.Context, data []byte, name string) error {
	f.written = append(f.written, name)
	return nil
}

func (f *fakeMediaStore) Remove(ctx context.Context, name string) error {
	f.removed = append(f.removed, name)
	return nil
}

func testUpload() *model.ArticleUpload {
	return &model.ArticleUpload{
		Title:        "Koruna posílila",
		Author:       "Jan Novák",
		TextRaw:      "První odstavec.\n\nDruhý odstavec.",
		ShortTextRaw: "Krátce.",
		CategoryRaw:  "finance",
		ImageDesc:    "graf",
		ImageExt:     "jpg",
		ImageData:    []byte{0xff, 0xd8},
		BaseName:     "koruna-posilila",
	}
}

func newTestPublishService(articles *fakeArticleRepo, validity *fakeValidityRepo, media *fakeMediaStore) (*PublishService, *pages.CacheIndex) {
	index := pages.NewCacheIndex()
	for _, p := range pages.AllPages() {
		index.Validate(p)
	}
	return NewPublishService(articles, validity, media, index), index
}

func TestPublish(t *testing.T) {
	articles := &fakeArticleRepo{}
	validity := newFakeValidityRepo()
	media := &fakeMediaStore{}
	svc, index := newTestPublishService(articles, validity, media)

	article, err := svc.Publish(context.Background(), testUpload(), "jnovak")
	require.NoError(t, err)

	assert.Equal(t, "koruna-posilila.html", article.Slug)
	assert.Equal(t, "jnovak", article.CreatedBy)
	assert.Equal(t, model.CategoryFinance, article.Category)
	assert.Contains(t, article.TextHTML, "<p>První odstavec.</p>")
	assert.Equal(t, "koruna-posilila_image_820.jpg", article.Image820)

	require.Len(t, articles.created, 1)

	// the page is not rendered here; it must start stale so the
	// first read builds it
	status, _ := validity.Status(context.Background(), "koruna-posilila.html")
	assert.Equal(t, model.ValidityInvalid, status)

	// the publish flips the front page, the digest and its own category
	assert.False(t, index.Valid(pages.PageIndex))
	assert.False(t, index.Valid(pages.PageNews))
	assert.False(t, index.Valid(pages.CategoryPage(model.CategoryFinance)))
	assert.True(t, index.Valid(pages.CategoryPage(model.CategoryRepublika)))
}

func TestPublishLinksRelatedBothWays(t *testing.T) {
	articles := &fakeArticleRepo{}
	validity := newFakeValidityRepo()
	validity.valid["stary-clanek.html"] = true
	media := &fakeMediaStore{}
	svc, _ := newTestPublishService(articles, validity, media)

	upload := testUpload()
	upload.RelatedSlugs = []string{"stary-clanek.html"}

	_, err := svc.Publish(context.Background(), upload, "jnovak")
	require.NoError(t, err)

	assert.Contains(t, articles.links, [2]string{"koruna-posilila.html", "stary-clanek.html"})
	assert.Contains(t, articles.links, [2]string{"stary-clanek.html", "koruna-posilila.html"})

	// the linked article's page must be rebuilt to show the new link
	status, _ := validity.Status(context.Background(), "stary-clanek.html")
	assert.Equal(t, model.ValidityInvalid, status)
}

func TestPublishUnknownCategory(t *testing.T) {
	articles := &fakeArticleRepo{}
	media := &fakeMediaStore{}
	svc, _ := newTestPublishService(articles, newFakeValidityRepo(), media)

	upload := testUpload()
	upload.CategoryRaw = "sport"

	_, err := svc.Publish(context.Background(), upload, "jnovak")
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
	assert.Empty(t, media.written)
	assert.Empty(t, articles.created)
}

func TestPublishRollsBackMediaOnPersistFailure(t *testing.T) {
	articles := &fakeArticleRepo{createErr: errors.New("connection lost")}
	media := &fakeMediaStore{}
	svc, index := newTestPublishService(articles, newFakeValidityRepo(), media)

	_, err := svc.Publish(context.Background(), testUpload(), "jnovak")
	require.Error(t, err)

	assert.ElementsMatch(t, media.written, media.removed)
	assert.True(t, index.Valid(pages.PageIndex))
}

func TestPublishRollsBackOnRelatedLinkFailure(t *testing.T) {
	articles := &fakeArticleRepo{linkErr: errors.New("connection lost")}
	validity := newFakeValidityRepo()
	media := &fakeMediaStore{}
	svc, _ := newTestPublishService(articles, validity, media)

	upload := testUpload()
	upload.RelatedSlugs = []string{"stary-clanek.html"}

	_, err := svc.Publish(context.Background(), upload, "jnovak")
	require.Error(t, err)

	assert.Contains(t, articles.deleted, "koruna-posilila.html")
	assert.Contains(t, validity.deleted, "koruna-posilila.html")
	assert.ElementsMatch(t, media.written, media.removed)
}

// bodyRenderer renders just the article body so file contents can be
// asserted without real templates.
type bodyRenderer struct{}

func (bodyRenderer) Render(templateID string, payload any) ([]byte, error) {
	return []byte(payload.(pages.ArticlePayload).Article.TextHTML), nil
}

func TestPublishThenReadRendersArticle(t *testing.T) {
	ctx := context.Background()
	articles := &fakeArticleRepo{}
	validity := newFakeValidityRepo()
	svc, index := newTestPublishService(articles, validity, &fakeMediaStore{})

	article, err := svc.Publish(ctx, testUpload(), "jnovak")
	require.NoError(t, err)

	reader := pages.NewService(articles, validity, index, pages.NewHeader(""), bodyRenderer{}, t.TempDir())

	path, err := reader.EnsureArticle(ctx, article.Slug)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<p>První odstavec.</p>")

	status, _ := validity.Status(ctx, article.Slug)
	assert.Equal(t, model.ValidityValid, status)
}

func TestRepublishServesNewContent(t *testing.T) {
	ctx := context.Background()
	articles := &fakeArticleRepo{}
	validity := newFakeValidityRepo()
	svc, index := newTestPublishService(articles, validity, &fakeMediaStore{})
	reader := pages.NewService(articles, validity, index, pages.NewHeader(""), bodyRenderer{}, t.TempDir())

	article, err := svc.Publish(ctx, testUpload(), "jnovak")
	require.NoError(t, err)
	_, err = reader.EnsureArticle(ctx, article.Slug)
	require.NoError(t, err)

	correction := testUpload()
	correction.TextRaw = "Opravený odstavec."
	_, err = svc.Publish(ctx, correction, "jnovak")
	require.NoError(t, err)

	// the republish must flip the cached page stale again
	status, _ := validity.Status(ctx, article.Slug)
	assert.Equal(t, model.ValidityInvalid, status)

	path, err := reader.EnsureArticle(ctx, article.Slug)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Opravený odstavec.")
	assert.NotContains(t, string(data), "První odstavec.")
}

func TestUnpublishInvalidatesEverything(t *testing.T) {
	articles := &fakeArticleRepo{}
	validity := newFakeValidityRepo()
	validity.valid["koruna-posilila.html"] = true
	svc, index := newTestPublishService(articles, validity, &fakeMediaStore{})

	require.NoError(t, svc.Unpublish(context.Background(), "koruna-posilila.html"))

	assert.Contains(t, articles.deleted, "koruna-posilila.html")
	status, _ := validity.Status(context.Background(), "koruna-posilila.html")
	assert.Equal(t, model.ValidityDoesNotExist, status)
	for _, p := range pages.AllPages() {
		assert.False(t, index.Valid(p), string(p))
	}
}
