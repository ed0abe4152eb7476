package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bloghub-backend/internal/shared/middleware"
	"bloghub-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	auth := middleware.AuthMiddleware(c.JWTManager)

	router.GET("/health", healthCheckHandler(c))

	setupAuthRoutes(router, c)
	setupUserRoutes(router, c, auth)
	setupBlogRoutes(router, c, auth)

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(r *gin.Engine, c *container.Container) {
	r.POST("/register", c.UserHandler.Register)
	r.POST("/login", c.UserHandler.Login)
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(r *gin.Engine, c *container.Container, auth gin.HandlerFunc) {
	users := r.Group("/user")
	{
		users.GET("/fetch", auth, c.UserHandler.FetchCurrent)
		users.PATCH("/edit", auth, c.UserHandler.Edit)
		users.GET("/:id", c.UserHandler.GetByID)
	}
}

// ========================================
// BLOG ROUTES
// ========================================
func setupBlogRoutes(r *gin.Engine, c *container.Container, auth gin.HandlerFunc) {
	blogs := r.Group("/blog")
	{
		// Public
		blogs.GET("/all", c.BlogHandler.GetAll)
		blogs.GET("/search", c.BlogHandler.Search)
		blogs.GET("/slug/:slug", c.BlogHandler.GetBySlug)
		blogs.GET("/fetch/:authorId", c.BlogHandler.GetByAuthor)
		blogs.GET("/scheduled-sweep", c.BlogHandler.ScheduledSweep)
		// Alias cũ, giữ cho trigger bên ngoài
		blogs.GET("/scheduled-blogs", c.BlogHandler.ScheduledSweep)
		blogs.GET("/:id", c.BlogHandler.GetByID)
		blogs.POST("/:id/view", c.BlogHandler.RecordView)

		// Author / reader actions
		blogs.POST("/create", auth, c.BlogHandler.Create)
		blogs.PATCH("/:id", auth, c.BlogHandler.Update)
		blogs.POST("/:id/like", auth, c.BlogHandler.ToggleLike)
		blogs.DELETE("/delete/:id", auth, c.BlogHandler.Delete)
	}

	// Route cũ cho external cron
	r.GET("/cron", c.BlogHandler.ScheduledSweep)
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check database
		dbStatus := gin.H{"status": "ok"}
		if appCtx.DB == nil {
			dbStatus["status"] = "disconnected"
		} else if err := appCtx.DB.Ping(ctx); err != nil {
			dbStatus["status"] = "error"
		} else if stats, err := appCtx.DB.Stats(); err == nil {
			dbStatus["pool"] = stats
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		// Redis down chỉ là degraded, DB down thì 503
		statusCode := http.StatusOK
		if dbStatus["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
			health["status"] = "unavailable"
		} else if redisStatus != "ok" {
			health["status"] = "degraded"
		}

		c.JSON(statusCode, health)
	}
}
