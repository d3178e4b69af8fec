package middleware

import (
	"net/http"
	"strings"

	"pinpoint-accounts/internal/config"
	"pinpoint-accounts/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	// ContextAccountID is the gin context key handlers read the
	// authenticated account id from.
	ContextAccountID = "accountID"
	ContextEmail     = "email"
)

// AuthMiddleware guards routes behind a Bearer session token.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
