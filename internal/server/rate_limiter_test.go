package server

import (
	"testing"
	"time"
)

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	limiter := newRateLimiter(2, time.Minute)

	if !limiter.Allow("shop-a") || !limiter.Allow("shop-a") {
		t.Fatalf("first two requests should pass")
	}
	if limiter.Allow("shop-a") {
		t.Fatalf("third request should be blocked")
	}
	if !limiter.Allow("shop-b") {
		t.Fatalf("other keys are independent")
	}
}

func TestRateLimiterRejectsEmptyKey(t *testing.T) {
	limiter := newRateLimiter(2, time.Minute)
	if limiter.Allow("") {
		t.Fatalf("empty key should be rejected")
	}
	if limiter.Allow("   ") {
		t.Fatalf("blank key should be rejected")
	}
}

func TestRateLimiterNormalizesDomainCase(t *testing.T) {
	limiter := newRateLimiter(2, time.Minute)

	if !limiter.Allow("Shop-A.myshopify.com") || !limiter.Allow(" SHOP-A.MYSHOPIFY.COM ") {
		t.Fatalf("first two requests should pass")
	}
	if limiter.Allow("shop-a.myshopify.com") {
		t.Fatalf("casing must not buy extra quota")
	}
}

func TestRateLimiterEvictsStaleWindows(t *testing.T) {
	limiter := newRateLimiter(1, 10*time.Millisecond)

	for _, key := range []string{"shop-a", "shop-b", "shop-c"} {
		if !limiter.Allow(key) {
			t.Fatalf("request for %q should pass", key)
		}
	}

	time.Sleep(15 * time.Millisecond)
	if !limiter.Allow("shop-d") {
		t.Fatalf("request after window should pass")
	}

	limiter.mu.Lock()
	size := len(limiter.windows)
	limiter.mu.Unlock()
	if size != 1 {
		t.Fatalf("expected stale windows evicted, map has %d entries", size)
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	limiter := newRateLimiter(1, 10*time.Millisecond)

	if !limiter.Allow("shop-a") {
		t.Fatalf("first request should pass")
	}
	if limiter.Allow("shop-a") {
		t.Fatalf("second request should be blocked")
	}

	time.Sleep(15 * time.Millisecond)
	if !limiter.Allow("shop-a") {
		t.Fatalf("window should have reset")
	}
}
