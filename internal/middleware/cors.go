package middleware

import (
	"net/http"
	"time"

	"pinpoint-accounts/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware builds the CORS policy from configuration. With no
// configured origins the API stays closed to browsers on other hosts.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	policy := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}

	if len(policy.AllowMethods) == 0 {
		policy.AllowMethods = []string{
			http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions,
		}
	}
	if len(policy.AllowHeaders) == 0 {
		policy.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", RequestIDHeader}
	}

	return cors.New(policy)
}
