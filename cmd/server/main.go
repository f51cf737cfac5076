package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomshare/internal/config"
	"roomshare/internal/handler"
	"roomshare/internal/middleware"
	"roomshare/internal/repository"
	"roomshare/internal/service"
	"roomshare/pkg/logger"
	"roomshare/pkg/mailer"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level)

	dbPool, err := pgxpool.New(context.Background(), cfg.Database.DSN)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		appLogger.Fatal("Failed to ping database", "error", err)
	}
	appLogger.Info("Database connection established")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		appLogger.Fatal("Failed to connect to Redis", "error", err)
	}
	appLogger.Info("Redis connection established")

	repos := repository.NewRepositories(dbPool, rdb, appLogger)

	mail := mailer.NewResend(mailer.Config{
		APIKey:       cfg.Mailer.APIKey,
		From:         cfg.Mailer.From,
		TestMode:     cfg.Mailer.TestMode,
		OwnerAddress: cfg.Mailer.OwnerAddress,
	}, appLogger)

	services := service.NewServices(repos, cfg, mail, appLogger)

	authMiddleware := middleware.NewAuthMiddleware(services.Session, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(services.RateLimit, cfg.RateLimit, appLogger)

	handlers := handler.NewHandlers(services, appLogger)

	router := setupRouter(handlers, authMiddleware, rateLimitMiddleware, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting server", "port", cfg.Server.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func setupRouter(
	handlers *handler.Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	cfg *config.Config,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Check)

	v1 := router.Group("/api/v1")
	{
		// Public, read-only. Search carries the per-IP limiter because it
		// is the only endpoint crawlers hammer.
		v1.GET("/listings", rateLimitMiddleware.Limit(), handlers.Listing.Search)
		v1.GET("/listings/:id", handlers.Listing.Get)
		v1.GET("/requests", handlers.Request.List)
		v1.GET("/requests/:id", handlers.Request.Get)
		v1.GET("/giveaways", handlers.Giveaway.List)
		v1.GET("/giveaways/:id", handlers.Giveaway.Get)

		protected := v1.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			users := protected.Group("/users")
			{
				users.GET("/me", handlers.User.Me)
				users.PUT("/me", handlers.User.UpdateMe)
			}

			listings := protected.Group("/listings")
			{
				listings.POST("", handlers.Listing.Create)
				listings.PUT("/:id", handlers.Listing.Update)
				listings.PUT("/:id/visibility", handlers.Listing.SetVisibility)
				listings.DELETE("/:id", handlers.Listing.Delete)
			}

			requests := protected.Group("/requests")
			{
				requests.POST("", handlers.Request.Create)
				requests.DELETE("/:id", handlers.Request.Delete)
			}

			giveaways := protected.Group("/giveaways")
			{
				giveaways.POST("", handlers.Giveaway.Create)
				giveaways.POST("/:id/close", handlers.Giveaway.Close)
				giveaways.DELETE("/:id", handlers.Giveaway.Delete)
			}

			threads := protected.Group("/threads")
			{
				threads.GET("", handlers.Thread.List)
				threads.GET("/:id/messages", handlers.Thread.Messages)
				threads.POST("/:id/messages", handlers.Thread.PostMessage)
			}

			protected.POST("/contact", handlers.Thread.Contact)
			protected.POST("/notifications/message", handlers.Notification.Dispatch)
		}
	}

	return router
}
