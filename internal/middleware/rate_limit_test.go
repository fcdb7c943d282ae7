package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/akshay-menon/recipe-flash-generator/internal/testhelpers"
)

func rateLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/generate", rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func hit(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_NoRedisIsNoOp(t *testing.T) {
	router := rateLimitedRouter(NewRateLimiter(nil, RateLimitConfig{Limit: 1, Window: time.Minute}))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(router).Code)
	}
}

func TestRateLimiter_EnforcesLimit(t *testing.T) {
	if os.Getenv("RUN_DB_TESTS") != "1" {
		t.Skip("set RUN_DB_TESTS=1 to run Docker-backed tests")
	}

	rl := NewRateLimiter(testhelpers.SetupTestRedis(t), RateLimitConfig{
		Window:    time.Minute,
		Limit:     2,
		KeyPrefix: "ratelimit:test",
	})
	router := rateLimitedRouter(rl)

	first := hit(router)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, hit(router).Code)

	third := hit(router)
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
}
