package middleware

import (
	"net/http"

	"pinpoint-accounts/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DefaultMaxRequestSize caps request bodies at 1 MiB. Every payload on
// this API is a small JSON document.
const DefaultMaxRequestSize = 1 << 20

// RequestSizeLimitMiddleware rejects oversized bodies before binding.
// Requests without a Content-Length are still capped by MaxBytesReader
// while the handler reads the body.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
