package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type denyLimiter struct{}

func (denyLimiter) Allow(string, int, time.Duration) bool { return false }

func TestAuthEndpointsAnswer429WhenRateLimited(t *testing.T) {
	handler := NewAuthHandler(nil, denyLimiter{}, time.Minute)

	checks := []struct {
		name string
		call func(http.ResponseWriter, *http.Request)
		path string
	}{
		{"register", handler.Register, "/api/auth/register"},
		{"login", handler.Login, "/api/auth/login"},
	}
	for _, tc := range checks {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			tc.call(rec, req)

			if rec.Code != http.StatusTooManyRequests {
				t.Fatalf("expected 429, got %d", rec.Code)
			}
			var payload struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !strings.HasPrefix(payload.Error, "too many") {
				t.Fatalf("unexpected error message %q", payload.Error)
			}
		})
	}
}
