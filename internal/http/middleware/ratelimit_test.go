package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRateLimiterFixedWindow(t *testing.T) {
	limiter := NewRateLimiter()
	for i := 0; i < 3; i++ {
		if !limiter.Allow("login:10.0.0.1", 3, time.Minute) {
			t.Fatalf("request %d must pass", i+1)
		}
	}
	if limiter.Allow("login:10.0.0.1", 3, time.Minute) {
		t.Fatal("fourth request in the window must be blocked")
	}
	if !limiter.Allow("login:10.0.0.2", 3, time.Minute) {
		t.Fatal("a different key has its own window")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	limiter := NewRateLimiter()
	if !limiter.Allow("register:10.0.0.1", 1, 10*time.Millisecond) {
		t.Fatal("first request must pass")
	}
	if limiter.Allow("register:10.0.0.1", 1, 10*time.Millisecond) {
		t.Fatal("second request within the window must be blocked")
	}
	time.Sleep(20 * time.Millisecond)
	if !limiter.Allow("register:10.0.0.1", 1, 10*time.Millisecond) {
		t.Fatal("the window must reset after it expires")
	}
}

func TestRedisLimiterFallsBackWhenRedisUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	limiter := NewRedisLimiter(client)

	if !limiter.Allow("login:10.0.0.9", 1, time.Minute) {
		t.Fatal("first request must pass through the fallback window")
	}
	if limiter.Allow("login:10.0.0.9", 1, time.Minute) {
		t.Fatal("the fallback window must still enforce the limit")
	}
	if !limiter.Allow("login:10.0.0.10", 1, time.Minute) {
		t.Fatal("a different key has its own fallback window")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.10:51234"
	if got := ClientIP(req); got != "192.0.2.10" {
		t.Fatalf("got %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Fatalf("forwarded address wins, got %q", got)
	}
}
