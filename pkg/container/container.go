package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/config"
	infraCache "bloghub-backend/internal/infrastructure/cache"
	"bloghub-backend/internal/infrastructure/database"
	"bloghub-backend/internal/infrastructure/queue"
	"bloghub-backend/pkg/cache"
	"bloghub-backend/pkg/jwt"

	// User domain imports
	"bloghub-backend/internal/domains/user"
	userHandler "bloghub-backend/internal/domains/user/handler"
	userRepo "bloghub-backend/internal/domains/user/repository"
	userService "bloghub-backend/internal/domains/user/service"

	// Blog domain imports
	blogHandler "bloghub-backend/internal/domains/blog/handler"
	blogJob "bloghub-backend/internal/domains/blog/job"
	blogRepo "bloghub-backend/internal/domains/blog/repository"
	blogService "bloghub-backend/internal/domains/blog/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo user.Repository
	BlogRepo blogRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService user.Service
	BlogService blogService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP + jobs)
	// ========================================
	UserHandler             *userHandler.UserHandler
	BlogHandler             *blogHandler.BlogHandler
	PublishScheduledHandler *blogJob.PublishScheduledHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph.
//
// Thứ tự initialization:
// 1. Config (không phụ thuộc gì)
// 2. Infrastructure (DB, Cache, Asynq client) - phụ thuộc Config
// 3. Repositories - phụ thuộc Infrastructure
// 4. Services - phụ thuộc Repositories
// 5. Handlers - phụ thuộc Services
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	// Connect với timeout 30s (gồm cả retry)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE CACHE + QUEUE CLIENT
	// ========================================
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	// Redis failure không critical: cache miss thì đọc thẳng DB
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
		}
	}
	c.Cache = redisCache

	c.AsynqClient = asynq.NewClient(queue.RedisOpt(cfg.Redis))
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	// ========================================
	// STEP 4-6: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)

	// Blog: cache là decorator bọc quanh Postgres repository
	c.BlogRepo = blogRepo.NewCachedRepository(
		blogRepo.NewPostgresRepository(pool),
		c.Cache,
	)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)

	c.BlogService = blogService.NewBlogService(
		c.BlogRepo,
		queue.NewPublishEnqueuer(c.AsynqClient),
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService)
	c.PublishScheduledHandler = blogJob.NewPublishScheduledHandler(c.BlogService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close asynq client")
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Redis")
			}
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
