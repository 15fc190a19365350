package pages

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"novinky-backend/internal/domains/article/model"
	"novinky-backend/pkg/logger"
)

// Handler serves the anonymous read surface: static pages regenerated
// on demand plus the live search endpoint.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ServeIndex handles GET /.
func (h *Handler) ServeIndex(c *gin.Context) {
	h.servePage(c, PageIndex)
}

// ServeHTML handles GET /:name where name is "<page>.html". Aggregate
// page names resolve through the cache index, everything else is
// treated as an article slug.
func (h *Handler) ServeHTML(c *gin.Context) {
	name := c.Param("name")
	if !strings.HasSuffix(name, ".html") || strings.Contains(name, "/") {
		c.Status(http.StatusNotFound)
		return
	}

	if page, ok := aggregatePage(name); ok {
		h.servePage(c, page)
		return
	}
	h.serveArticle(c, name)
}

// Search handles GET /search?q=. Results are rendered live, never
// written to disk.
func (h *Handler) Search(c *gin.Context) {
	html, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		var fieldErr *model.FieldError
		if errors.As(err, &fieldErr) {
			c.String(http.StatusBadRequest, "neplatný dotaz")
			return
		}
		logger.Error("search failed", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (h *Handler) servePage(c *gin.Context, page Page) {
	path, err := h.service.EnsurePage(c.Request.Context(), page)
	if err != nil {
		logger.Error("failed to serve page "+string(page), err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.File(path)
}

func (h *Handler) serveArticle(c *gin.Context, slug string) {
	path, err := h.service.EnsureArticle(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, model.ErrArticleNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logger.Error("failed to serve article "+slug, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.File(path)
	h.service.CountView(slug)
}

func aggregatePage(name string) (Page, bool) {
	candidate := Page(strings.TrimSuffix(name, ".html"))
	for _, p := range AllPages() {
		if p == candidate {
			return p, true
		}
	}
	return "", false
}
