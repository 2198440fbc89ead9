package backend

import (
	"context"
	"testing"
	"time"
)

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if !th.wait(ctx) {
			t.Fatalf("expected wait %d to pass", i)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected at least 40ms between three calls, got %s", elapsed)
	}
}

func TestThrottleDisabled(t *testing.T) {
	var nilThrottle *throttle
	if !nilThrottle.wait(context.Background()) {
		t.Fatalf("expected nil throttle to pass")
	}
	th := newThrottle(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		th.wait(context.Background())
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("expected zero interval to never block, got %s", elapsed)
	}
}

func TestThrottleCancelled(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if !th.wait(ctx) {
		t.Fatalf("expected first wait to pass")
	}
	cancel()
	start := time.Now()
	if th.wait(ctx) {
		t.Fatalf("expected cancelled wait to fail")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected cancellation to cut the wait short, got %s", elapsed)
	}
}
