package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"trackify.backend/internal/interfaces/http/response"
	"trackify.backend/pkg/logger"
	"trackify.backend/pkg/redis"
)

var redisIncr = redis.IncrWithExpiry

// RateLimitMiddleware allows limit requests per client IP within window for a
// named bucket. Redis errors let the request through.
func RateLimitMiddleware(bucket string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", bucket, c.ClientIP())
		count, err := redisIncr(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn(c.Request.Context(), "Rate limiter unavailable", zap.String("bucket", bucket), zap.Error(err))
			c.Next()
			return
		}

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.ErrorWithError(c, http.StatusTooManyRequests, "ERR_RATE_LIMITED", "Too many requests. Please try again later.")
			return
		}

		c.Next()
	}
}
