package routes

import (
	"net/http"

	"pinpoint-accounts/internal/config"
	"pinpoint-accounts/internal/delivery/http/handler"
	"pinpoint-accounts/internal/infrastructure/database/postgres"
	"pinpoint-accounts/internal/logger"
	"pinpoint-accounts/internal/mailer"
	"pinpoint-accounts/internal/middleware"
	"pinpoint-accounts/internal/usecase/account"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	accountRepository := postgres.NewAccountRepository(db)
	notifier := mailer.New(&cfg.SMTP)
	accountService := account.NewService(accountRepository, notifier, cfg)
	accountHandler := handler.NewAccountHandler(accountService)

	root := router.Group("")
	{
		accountHandler.RegisterRoutes(root)

		protected := root.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			accountHandler.RegisterProtectedRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}
