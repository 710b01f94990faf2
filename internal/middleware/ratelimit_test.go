package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func testConfig(burst int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(1.0), // 1 req/sec
		GeneralBurst:    burst,
		CleanupInterval: time.Minute,
	}
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(testConfig(3))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/users/", nil)
		req.RemoteAddr = "203.0.113.7:51234"
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i, w.Result().StatusCode, http.StatusOK)
		}
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(testConfig(1))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/users/", nil)
	req.RemoteAddr = "203.0.113.7:51234"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("first request: status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	resp := w.Result()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want %d", resp.StatusCode, http.StatusTooManyRequests)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRateLimiter_SeparateLimitsPerClientIP(t *testing.T) {
	rl := NewRateLimiter(testConfig(1))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodGet, "/users/", nil)
	first.RemoteAddr = "203.0.113.7:51234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, first)

	// 別IPからのリクエストは独立したバケットで許可される
	second := httptest.NewRequest(http.MethodGet, "/users/", nil)
	second.RemoteAddr = "198.51.100.9:40000"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, second)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	if got := rl.LimiterCount(); got != 2 {
		t.Errorf("LimiterCount = %d, want 2", got)
	}
}

func TestRateLimiterConfigFromPerMinute(t *testing.T) {
	cfg := RateLimiterConfigFromPerMinute(60)

	if cfg.GeneralRate != rate.Limit(1.0) {
		t.Errorf("GeneralRate = %v, want %v", cfg.GeneralRate, rate.Limit(1.0))
	}
	if cfg.GeneralBurst != 60 {
		t.Errorf("GeneralBurst = %d, want 60", cfg.GeneralBurst)
	}
}

func TestRateLimiterConfigFromPerMinute_ZeroKeepsDefaults(t *testing.T) {
	cfg := RateLimiterConfigFromPerMinute(0)
	def := DefaultRateLimiterConfig()

	if cfg.GeneralRate != def.GeneralRate || cfg.GeneralBurst != def.GeneralBurst {
		t.Errorf("expected defaults for zero per-minute value, got %+v", cfg)
	}
}

func TestClientIPFromRequest_StripsPort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:51234"

	if got := clientIPFromRequest(req); got != "203.0.113.7" {
		t.Errorf("clientIPFromRequest = %q, want %q", got, "203.0.113.7")
	}
}
