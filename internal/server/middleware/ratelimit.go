package middleware

import (
	"net/http"

	"hirehub/internal/storage/redis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit caps requests per client IP per minute, backed by Redis. A
// cache failure lets the request through rather than blocking traffic.
func RateLimit(cache *redis.Cache, maxPerMinute int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := cache.IncrementRateLimit(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Error("failed to check rate limit",
				zap.String("client_ip", c.ClientIP()),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count > int64(maxPerMinute) {
			logger.Warn("rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.Int64("count", count),
			)

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please wait a minute",
			})
			return
		}

		c.Next()
	}
}
