package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimitMiddleware_AllowsWithinLimit(t *testing.T) {
	handler := RateLimitMiddleware(5)(okHandler())

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestFrom("10.0.0.1:1234"))

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimitMiddleware_BlocksOverLimit(t *testing.T) {
	handler := RateLimitMiddleware(3)(okHandler())

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.1:1234"))
	}

	// 4th request should be rate-limited
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("10.0.0.1:1234"))

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestRateLimitMiddleware_KeysOnClientHost(t *testing.T) {
	handler := RateLimitMiddleware(2)(okHandler())

	// Different source ports share one budget.
	handler.ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.1:1000"))
	handler.ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.1:2000"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("10.0.0.2:1000"))
	if w.Code != http.StatusOK {
		t.Errorf("10.0.0.2 should not be rate-limited, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("10.0.0.1:3000"))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("10.0.0.1 should be rate-limited, got %d", w.Code)
	}
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl := &rateLimiter{requests: make(map[string][]time.Time), limit: 1, window: time.Minute}
	now := time.Now()

	if !rl.allow("a", now) {
		t.Fatal("first request should be allowed")
	}
	if rl.allow("a", now.Add(30*time.Second)) {
		t.Error("second request inside window should be blocked")
	}
	if !rl.allow("a", now.Add(61*time.Second)) {
		t.Error("request after window should be allowed")
	}
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := &rateLimiter{requests: make(map[string][]time.Time), limit: 5, window: time.Minute}
	now := time.Now()

	rl.allow("10.0.0.1", now)
	rl.allow("10.0.0.2", now.Add(30*time.Second))
	rl.allow("10.0.0.3", now.Add(2*time.Minute))

	if _, ok := rl.requests["10.0.0.1"]; ok {
		t.Error("idle client 10.0.0.1 should be evicted")
	}
	if _, ok := rl.requests["10.0.0.2"]; ok {
		t.Error("idle client 10.0.0.2 should be evicted")
	}
	if len(rl.requests) != 1 {
		t.Errorf("expected only the active client to remain, got %d keys", len(rl.requests))
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	handler := AdminAuthMiddleware("secret")(okHandler())

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"missing scheme", "secret", http.StatusUnauthorized},
		{"valid", "Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestAdminAuthMiddleware_EmptyTokenAllowsAll(t *testing.T) {
	handler := AdminAuthMiddleware("")(okHandler())
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	called := false
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	if !called {
		t.Error("inner handler was not called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", w.Code)
	}
}

func TestClientKey(t *testing.T) {
	if got := clientKey(requestFrom("192.168.1.5:4433")); got != "192.168.1.5" {
		t.Errorf("expected host only, got %q", got)
	}
	if got := clientKey(requestFrom("unix-socket")); got != "unix-socket" {
		t.Errorf("expected raw addr fallback, got %q", got)
	}
}
