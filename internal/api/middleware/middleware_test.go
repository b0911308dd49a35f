package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.POST("/api/classes/:class_id/attendance", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		limiter *fakeLimiter
		want    int
	}{
		{"allowed", &fakeLimiter{allowed: true}, http.StatusOK},
		{"blocked", &fakeLimiter{allowed: false}, http.StatusTooManyRequests},
		{"store error degrades", &fakeLimiter{err: errors.New("redis down")}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(RateLimit(tt.limiter, 10, time.Minute))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/classes/1/attendance", nil))

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
			if len(tt.limiter.keys) != 1 || !strings.HasSuffix(tt.limiter.keys[0], ":/api/classes/:class_id/attendance") {
				t.Errorf("限流键应包含路由模板，实际=%v", tt.limiter.keys)
			}
		})
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	r := newEngine(RateLimit(nil, 10, time.Minute))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/classes/1/attendance", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCORS_AllowAll(t *testing.T) {
	r := newEngine(CORS([]string{"*"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/classes/1/attendance", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected *, got %q", got)
	}
}

func TestCORS_AllowList(t *testing.T) {
	r := newEngine(CORS([]string{"http://allowed.test/"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/classes/1/attendance", nil)
	req.Header.Set("Origin", "http://allowed.test")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://allowed.test" {
		t.Errorf("expected echoed origin, got %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/classes/1/attendance", nil)
	req.Header.Set("Origin", "http://other.test")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header, got %q", got)
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/classes/1/attendance", nil))
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Errorf("expected generated uuid, got %q", w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/classes/1/attendance", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected propagated id, got %q", got)
	}
}
