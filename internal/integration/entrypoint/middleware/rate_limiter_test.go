package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, maxAttempts int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiterWithConfig(client, maxAttempts, window), mr
}

func newTestRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterBlocksAfterBudget(t *testing.T) {
	rl, _ := newTestLimiter(t, 3, time.Minute)
	router := newTestRouter(rl)

	for i := 0; i < 3; i++ {
		if code := doRequest(router); code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, code)
		}
	}

	if code := doRequest(router); code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", code)
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl, mr := newTestLimiter(t, 1, time.Minute)
	router := newTestRouter(rl)

	if code := doRequest(router); code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", code)
	}
	if code := doRequest(router); code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", code)
	}

	// Advance past the window so the counter expires.
	mr.FastForward(2 * time.Minute)

	if code := doRequest(router); code != http.StatusOK {
		t.Errorf("status after window reset = %d, want 200", code)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiterWithConfig(client, 1, time.Minute)
	router := newTestRouter(rl)

	mr.Close()

	if code := doRequest(router); code != http.StatusOK {
		t.Errorf("status with redis down = %d, want 200 (fail open)", code)
	}
}
