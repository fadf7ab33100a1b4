package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
	"github.com/noah-isme/photographer-catalog-api/pkg/response"
)

type readiness interface {
	Ready() bool
}

// RequireCatalog rejects requests with 503 until the catalog snapshot has
// been loaded.
func RequireCatalog(r readiness) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r == nil || !r.Ready() {
			response.Error(c, appErrors.ErrUnavailable)
			c.Abort()
			return
		}
		c.Next()
	}
}
