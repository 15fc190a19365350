package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"novinky-backend/internal/shared/middleware"
	"novinky-backend/pkg/container"
)

// SetupAppRouter builds the authenticated publish/admin surface.
func SetupAppRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c))

	authed := router.Group("/")
	authed.Use(middleware.Auth(c.JWTManager))
	{
		authed.POST("/create", c.PublishHandler.Create)

		admin := authed.Group("/admin")
		admin.Use(middleware.Admin())
		{
			admin.POST("/articles/delete/:slug", c.PublishHandler.DeleteArticle)
			admin.POST("/users/delete/:username", c.AdminHandler.DeleteUser)
		}
	}

	return router
}

// SetupWebRouter builds the anonymous read surface.
func SetupWebRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.Logger(),
	)

	// media derivatives are plain static files when stored on disk
	if c.Config.Media.Backend == "disk" {
		router.Static("/u", c.Config.Media.UploadDir)
	}

	router.GET("/", c.PageHandler.ServeIndex)
	router.GET("/search", c.PageHandler.Search)
	router.GET("/:name", c.PageHandler.ServeHTML)

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			status = http.StatusServiceUnavailable
			cacheStatus = "down"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		ctx.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
		})
	}
}
