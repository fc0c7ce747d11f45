package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/bangladiet/backend/internal/testhelpers"
)

func rateLimitedRouter(rl *RateLimiter, userID uuid.UUID) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(userIDKey, userID)
		c.Next()
	})
	router.Use(rl.RateLimitMiddleware())
	router.POST("/analyze", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func hit(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze", nil))
	return w
}

func TestRateLimiter_DisabledWithoutRedis(t *testing.T) {
	router := rateLimitedRouter(NewAnalysisRateLimiter(nil, 1), uuid.New())
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(router).Code)
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	router := rateLimitedRouter(NewAnalysisRateLimiter(testhelpers.UnreachableRedis(t), 1), uuid.New())

	w := hit(router)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimiter_RequiresUser(t *testing.T) {
	rl := NewAnalysisRateLimiter(redis.NewClient(&redis.Options{}), 1)
	router := gin.New()
	router.Use(rl.RateLimitMiddleware())
	router.POST("/analyze", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, hit(router).Code)
}

func TestRateLimiter_Redis(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	rl := NewClassificationRateLimiter(client, 2)
	rl.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	alice := rateLimitedRouter(rl, uuid.New())
	bob := rateLimitedRouter(rl, uuid.New())

	first := hit(alice)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, hit(alice).Code)

	blocked := hit(alice)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Contains(t, blocked.Body.String(), `"code":"RATE_LIMITED"`)
	assert.Equal(t, "1800", blocked.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit(bob).Code)

	rl.now = func() time.Time { return time.Date(2024, 5, 1, 13, 0, 1, 0, time.UTC) }
	assert.Equal(t, http.StatusOK, hit(alice).Code)
}
