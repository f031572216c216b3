package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLimitedRouter(rdb *redis.Client, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	logger := slog.New(slog.DiscardHandler)
	r.POST("/login", LoginRateLimit(rdb, limit, time.Minute, logger), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func postLogin(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	return w
}

func TestLoginRateLimitDisabled(t *testing.T) {
	// No Redis client or a non-positive limit turns the limiter off entirely.
	for _, r := range []*gin.Engine{
		newLimitedRouter(nil, 10),
		newLimitedRouter(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 0),
	} {
		for i := 0; i < 3; i++ {
			if w := postLogin(r); w.Code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i, w.Code)
			}
		}
	}
}

func TestLoginRateLimitFailsOpen(t *testing.T) {
	// An unreachable Redis must not block logins.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := newLimitedRouter(rdb, 1)

	for i := 0; i < 3; i++ {
		if w := postLogin(r); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 when the limiter is down, got %d", i, w.Code)
		}
	}
}
