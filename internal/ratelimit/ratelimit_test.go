package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			krl := New(tt.rps, tt.burst)

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if krl.Allow("test") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("got %d passed, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	krl := New(1, 1)

	if !krl.Allow("key-a") {
		t.Error("first request for key-a should pass")
	}
	if krl.Allow("key-a") {
		t.Error("second request for key-a should be blocked")
	}

	// A different key has its own bucket
	if !krl.Allow("key-b") {
		t.Error("first request for key-b should pass")
	}

	if krl.Len() != 2 {
		t.Errorf("got %d tracked keys, want 2", krl.Len())
	}
}

func TestKeyedRateLimiter_Wait(t *testing.T) {
	krl := New(100, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Burst token, then a refill at 100rps: both should complete well
	// within the deadline.
	for i := 0; i < 2; i++ {
		if err := krl.Wait(ctx, "test"); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
}

func TestKeyedRateLimiter_WaitCanceled(t *testing.T) {
	krl := New(0.001, 1)

	// Drain the burst token
	if !krl.Allow("test") {
		t.Fatal("burst token should be available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := krl.Wait(ctx, "test"); err == nil {
		t.Error("wait should fail when context expires before a token is available")
	}
}
