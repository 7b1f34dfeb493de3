// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

var simpleOKHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/content", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func TestIPRateLimiter(t *testing.T) {
	rl := NewIPRateLimiter(2, 2)
	handler := rl.Middleware()(simpleOKHandler)

	// First few requests should succeed
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestFrom("192.168.1.1:12345"))
		if w.Code != http.StatusOK {
			t.Errorf("request %d: expected status %d, got %d", i, http.StatusOK, w.Code)
		}
	}

	// Next request should be rate limited
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("192.168.1.1:12345"))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected error message in body")
	}
}

func TestIPRateLimiter_DifferentIPs(t *testing.T) {
	rl := NewIPRateLimiter(1, 1)

	if !rl.Allow(requestFrom("192.168.1.1:12345")) {
		t.Fatal("first IP: first request should pass")
	}
	if rl.Allow(requestFrom("192.168.1.1:23456")) {
		t.Error("first IP: port change must not reset the limit")
	}
	if !rl.Allow(requestFrom("192.168.1.2:12345")) {
		t.Error("second IP should still be able to make requests")
	}
}

func TestIPRateLimiter_Disabled(t *testing.T) {
	rl := NewIPRateLimiter(0, 0)
	for i := 0; i < 10; i++ {
		if !rl.Allow(requestFrom("10.0.0.1:1")) {
			t.Fatalf("request %d limited with limiting disabled", i)
		}
	}

	var nilLimiter *IPRateLimiter
	if !nilLimiter.Allow(requestFrom("10.0.0.1:1")) {
		t.Error("nil limiter should allow")
	}
}

func TestIPRateLimiter_ClearsWhenFull(t *testing.T) {
	rl := NewIPRateLimiter(1, 1)
	rl.maxLimiters = 2

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		rl.Allow(requestFrom(addr))
	}
	// The fourth call sees three limiters and starts over.
	rl.Allow(requestFrom("10.0.0.4:1"))
	if n := rl.cache.len(); n != 1 {
		t.Errorf("limiters = %d, want 1 after reset", n)
	}
}

func TestIPRateLimiter_BehindRealIP(t *testing.T) {
	rl := NewIPRateLimiter(1, 1)
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.With(rl.Middleware()).Get("/api/content", simpleOKHandler)

	send := func(realIP string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/content", nil)
		req.Header.Set("X-Real-IP", realIP)
		req.RemoteAddr = "127.0.0.1:12345" // Proxy address
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("10.0.0.1"); code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, code)
	}
	if code := send("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, code)
	}
	if code := send("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client: expected status %d, got %d", http.StatusOK, code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.168.1.1:12345", "192.168.1.1"},
		{"[::1]:8080", "::1"},
		{"10.0.0.1", "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.remoteAddr, func(t *testing.T) {
			if got := ClientIP(requestFrom(tt.remoteAddr)); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, http.StatusNotFound, "Article not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if got := w.Body.String(); got != "{\"error\":\"Article not found\"}\n" {
		t.Errorf("body = %q", got)
	}
}
