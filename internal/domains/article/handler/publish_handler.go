package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"novinky-backend/internal/domains/article/model"
	"novinky-backend/internal/domains/article/service"
	"novinky-backend/internal/infrastructure/storage"
	"novinky-backend/internal/shared/middleware"
	"novinky-backend/internal/shared/response"
	"novinky-backend/pkg/logger"
)

// PublishHandler exposes the authenticated publish endpoint.
type PublishHandler struct {
	publisher *service.PublishService
}

func NewPublishHandler(publisher *service.PublishService) *PublishHandler {
	return &PublishHandler{publisher: publisher}
}

// Create handles POST /create. The body is a multipart form; on
// success the editor is redirected to the freshly published page.
func (h *PublishHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	reader, err := c.Request.MultipartReader()
	if err != nil {
		response.BadRequest(c, "expected a multipart form")
		return
	}

	upload, err := service.ParseUpload(reader)
	if err != nil {
		var fieldErr *model.FieldError
		if errors.As(err, &fieldErr) {
			response.ErrorResponse(c, http.StatusBadRequest, "ART_001", fieldErr.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	// the form carries a free-text author line, but the byline always
	// comes from the signed-in account
	upload.Author = identity.AuthorName
	upload.Username = identity.Username

	article, err := h.publisher.Publish(c.Request.Context(), upload, identity.Username)
	if err != nil {
		h.publishError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/"+article.Slug)
}

// DeleteArticle handles POST /admin/articles/delete/:slug.
func (h *PublishHandler) DeleteArticle(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "missing slug")
		return
	}

	if err := h.publisher.Unpublish(c.Request.Context(), slug); err != nil {
		logger.Error("failed to delete article "+slug, err)
		response.InternalServerError(c, "failed to delete article")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": slug})
}

func (h *PublishHandler) publishError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrUnknownCategory):
		response.ErrorResponse(c, http.StatusBadRequest, "ART_002", "unknown category")
	case errors.Is(err, storage.ErrImageTooNarrow),
		errors.Is(err, storage.ErrKindMismatch),
		errors.Is(err, storage.ErrEmptyMedia):
		response.ErrorResponse(c, http.StatusBadRequest, "ART_003", err.Error())
	default:
		logger.Error("publish failed", err)
		response.InternalServerError(c, "failed to publish article")
	}
}
