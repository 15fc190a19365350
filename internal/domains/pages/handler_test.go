package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novinky-backend/internal/domains/article/model"
)

func newTestRouter(t *testing.T) (*gin.Engine, *stubArticleRepo, *stubValidityRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	articles := newStubArticleRepo()
	validity := newStubValidityRepo()
	svc := NewService(articles, validity, NewCacheIndex(), NewHeader(""), &countingRenderer{}, t.TempDir())
	h := NewHandler(svc)

	router := gin.New()
	router.GET("/", h.ServeIndex)
	router.GET("/search", h.Search)
	router.GET("/:name", h.ServeHTML)
	return router, articles, validity
}

func TestServeIndex(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "index")
}

func TestServeAggregateByName(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/finance.html", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "category")
}

func TestServeUnknownArticle404(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/neexistuje.html", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeNonHTMLPath404(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/styles.css", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeArticleCountsView(t *testing.T) {
	router, articles, validity := newTestRouter(t)
	ctx := context.Background()

	require.NoError(t, articles.Create(ctx, &model.Article{Slug: "clanek.html", Title: "Článek"}))
	require.NoError(t, validity.SetInvalid(ctx, "clanek.html"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clanek.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// the counter bump runs detached from the request
	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&articles.views) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSearchEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search?q=volby+praha", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestSearchEndpointRejectsShortQuery(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search?q=ab", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
