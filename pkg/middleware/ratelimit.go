package middleware

import (
	"github.com/gin-gonic/gin"
	mem "tripcraft/pkg/memcache"
	"tripcraft/pkg/utils"
)

// RateLimitMiddleware limits requests per client IP. A nil store disables it.
func RateLimitMiddleware(limiters mem.VisitorLimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiters == nil || limiters.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		utils.HandleServiceError(c, utils.ErrRateLimited, utils.ErrorMessages{})
		c.Abort()
	}
}
