package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/omarhamdan/safra/internal/models"
)

// loginAttempts bumps the window counter and sets its TTL in one atomic
// step; a failure between a separate INCR and EXPIRE would leave a counter
// that never expires and throttle the IP forever.
var loginAttempts = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return count`)

// LoginRateLimit limits login attempts per client IP with a fixed window in
// Redis. A nil client disables limiting, and Redis errors fail open: a
// degraded limiter must not take logins down with it.
func LoginRateLimit(rdb *redis.Client, limit int, window time.Duration, logger *slog.Logger) gin.HandlerFunc {
	if rdb == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		key := fmt.Sprintf("ratelimit:login:ip:%s", ip)
		ctx := c.Request.Context()

		count, err := loginAttempts.Run(ctx, rdb, []string{key}, int(window/time.Second)).Int64()
		if err != nil {
			logger.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window/time.Second)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse("too many login attempts, try again later"))
			return
		}
		c.Next()
	}
}
