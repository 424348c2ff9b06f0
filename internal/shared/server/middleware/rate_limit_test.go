package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })

	router := gin.New()
	router.Use(RateLimit(RateLimitConfig{
		Rules:    map[string]RateLimitRule{"UPLOAD": {Rate: 1, Burst: 2}},
		GroupFor: func(*gin.Context) string { return "UPLOAD" },
		Limiter:  limiter,
	}))
	router.POST("/resumes", func(c *gin.Context) { c.Status(http.StatusCreated) })

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/resumes", nil))
		if resp.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/resumes", nil))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRateLimiterRefills(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("k", rule); !ok {
		t.Fatalf("first call should be allowed")
	}
	if ok, _ := limiter.Allow("k", rule); ok {
		t.Fatalf("second call should be limited")
	}

	now = now.Add(1100 * time.Millisecond)
	if ok, _ := limiter.Allow("k", rule); !ok {
		t.Fatalf("call after refill should be allowed")
	}
}
