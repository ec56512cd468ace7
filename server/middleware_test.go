package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRealIPMiddleware(t *testing.T) {
	var seen string
	handler := RealIPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "203.0.113.7" {
		t.Errorf("RemoteAddr = %q, want first X-Forwarded-For entry", seen)
	}
}

func TestRealIPMiddlewareWithoutHeader(t *testing.T) {
	var seen string
	handler := RealIPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "10.0.0.1:1234" {
		t.Errorf("RemoteAddr = %q, want the original address", seen)
	}
}

func TestGetTokenCost(t *testing.T) {
	tests := []struct {
		path string
		want int64
	}{
		{"/health", 5},
		{"/metrics", 5},
		{"/rankings/abs", 200},
		{"/rankings/sjr", 200},
		{"/journal/nature", 20},
		{"/conference/icse", 20},
		{"/somewhere-else", 20},
	}

	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if got := getTokenCost(req); got != tc.want {
			t.Errorf("getTokenCost(%q) = %d, want %d", tc.path, got, tc.want)
		}
	}
}

func TestRateLimitHandlerExhaustion(t *testing.T) {
	handler := RateLimitHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// A fresh client starts with 1000 tokens; table dumps cost 200, so the
	// sixth request in quick succession must be rejected.
	var lastCode int
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodGet, "/rankings/abs", nil)
		req.RemoteAddr = "198.51.100.9:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		lastCode = rec.Code

		if i < 5 && rec.Code != http.StatusOK {
			t.Fatalf("Request %d = %d, want 200", i+1, rec.Code)
		}
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("Sixth request = %d, want 429", lastCode)
	}
}

func TestRateLimitHeaders(t *testing.T) {
	handler := RateLimitHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "198.51.100.10:4000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-RateLimit-Limit") != "1000" {
		t.Errorf("X-RateLimit-Limit = %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("X-RateLimit-Remaining should be set on accepted requests")
	}
}
