package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitAllowsBurstThenThrottles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	r.Use(RateLimit(limiter, RateLimitRule{Rate: 1, Burst: 2}))
	r.POST("/api/v1/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp
	}

	if resp := do(); resp.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", resp.Code)
	}
	if resp := do(); resp.Code != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", resp.Code)
	}

	resp := do()
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["error"] != "rate_limited" {
		t.Fatalf("expected rate_limited error, got %v", body["error"])
	}
}

func TestRateLimitRefillsOverTime(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("key", rule); !ok {
		t.Fatalf("expected first call allowed")
	}
	if ok, retry := limiter.Allow("key", rule); ok || retry <= 0 {
		t.Fatalf("expected second call throttled with positive retry, got ok=%v retry=%s", ok, retry)
	}

	now = now.Add(2 * time.Second)
	if ok, _ := limiter.Allow("key", rule); !ok {
		t.Fatalf("expected call allowed after refill")
	}
}

func TestRateLimitKeysByClientIPWhenAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(limiter, RateLimitRule{Rate: 1, Burst: 1}))
	r.POST("/api/v1/auth/signup", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	do := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", nil)
		req.RemoteAddr = remote
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp
	}

	if resp := do("10.0.0.1:1234"); resp.Code != http.StatusOK {
		t.Fatalf("first caller: expected 200, got %d", resp.Code)
	}
	if resp := do("10.0.0.1:1234"); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("first caller again: expected 429, got %d", resp.Code)
	}
	if resp := do("10.0.0.2:1234"); resp.Code != http.StatusOK {
		t.Fatalf("different caller: expected 200, got %d", resp.Code)
	}
}
