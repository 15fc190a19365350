package container

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"novinky-backend/internal/config"
	articleHandler "novinky-backend/internal/domains/article/handler"
	articleRepo "novinky-backend/internal/domains/article/repository"
	articleService "novinky-backend/internal/domains/article/service"
	"novinky-backend/internal/domains/pages"
	userHandler "novinky-backend/internal/domains/user/handler"
	userRepo "novinky-backend/internal/domains/user/repository"
	infraCache "novinky-backend/internal/infrastructure/cache"
	"novinky-backend/internal/infrastructure/database"
	"novinky-backend/internal/infrastructure/queue"
	"novinky-backend/internal/infrastructure/storage"
	"novinky-backend/pkg/cache"
	"novinky-backend/pkg/jwt"
	"novinky-backend/pkg/logger"
)

// Container holds the full dependency graph. Everything is a
// singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	BlobStore storage.BlobStore
	Media     *storage.MediaProcessor

	CacheIndex *pages.CacheIndex
	Header     *pages.Header
	Renderer   pages.Renderer

	ArticleRepo  articleRepo.ArticleRepository
	ValidityRepo articleRepo.ValidityRepository
	UserRepo     userRepo.UserRepository

	PublishService *articleService.PublishService
	PageService    *pages.Service

	PublishHandler *articleHandler.PublishHandler
	PageHandler    *pages.Handler
	AdminHandler   *userHandler.AdminHandler

	Scheduler   *queue.Scheduler
	JobServer   *queue.Server
	redisClient *infraCache.RedisCache
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(&cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache
	c.redisClient = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	c.BlobStore, err = newBlobStore(cfg)
	if err != nil {
		return nil, err
	}
	c.Media = storage.NewMediaProcessor(c.BlobStore)

	c.CacheIndex = pages.NewCacheIndex()
	c.Header = pages.NewHeader(cfg.Weather.URL)
	c.Renderer, err = pages.NewTemplateRenderer(filepath.Join(cfg.App.WebRoot, "templates"))
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	c.ArticleRepo = articleRepo.NewPostgresArticleRepository(db.Pool, c.Cache)
	c.ValidityRepo = articleRepo.NewPostgresValidityRepository(db.Pool)
	c.UserRepo = userRepo.NewPostgresUserRepository(db.Pool)

	c.PublishService = articleService.NewPublishService(c.ArticleRepo, c.ValidityRepo, c.Media, c.CacheIndex)
	c.PageService = pages.NewService(c.ArticleRepo, c.ValidityRepo, c.CacheIndex, c.Header, c.Renderer, cfg.App.WebRoot)

	c.PublishHandler = articleHandler.NewPublishHandler(c.PublishService)
	c.PageHandler = pages.NewHandler(c.PageService)
	c.AdminHandler = userHandler.NewAdminHandler(c.UserRepo, c.CacheIndex)

	c.Scheduler = queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.JobServer = queue.NewServer(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB, c.CacheIndex, c.Header)

	logger.Info("container initialized", map[string]interface{}{
		"environment":   cfg.App.Environment,
		"media_backend": cfg.Media.Backend,
	})
	return c, nil
}

func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	if cfg.Media.Backend == "minio" {
		store, err := storage.NewMinIOStore(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("failed to init minio store: %w", err)
		}
		return store, nil
	}

	store, err := storage.NewDiskStore(cfg.Media.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init disk store: %w", err)
	}
	return store, nil
}

// Cleanup releases the container's external connections.
func (c *Container) Cleanup() {
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
