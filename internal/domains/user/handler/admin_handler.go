package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"novinky-backend/internal/domains/pages"
	"novinky-backend/internal/domains/user/model"
	"novinky-backend/internal/domains/user/repository"
	"novinky-backend/internal/shared/response"
	"novinky-backend/pkg/logger"
)

// AdminHandler exposes account administration endpoints.
type AdminHandler struct {
	users repository.UserRepository
	index *pages.CacheIndex
}

func NewAdminHandler(users repository.UserRepository, index *pages.CacheIndex) *AdminHandler {
	return &AdminHandler{users: users, index: index}
}

// DeleteUser handles POST /admin/users/delete/:username. Aggregate
// pages are invalidated wholesale; the account's bylines may appear
// anywhere.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "missing username")
		return
	}

	if err := h.users.Delete(c.Request.Context(), username); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		logger.Error("failed to delete user "+username, err)
		response.InternalServerError(c, "failed to delete user")
		return
	}

	h.index.InvalidateAll()
	response.Success(c, http.StatusOK, gin.H{"deleted": username})
}
