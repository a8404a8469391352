package middleware

import (
	"context"
	"testing"
	"time"
)

func TestLimiterSet_Evict(t *testing.T) {
	s := newLimiterSet(1, 1)
	base := time.Unix(1700000000, 0)

	s.get("10.0.0.1", base)
	s.get("10.0.0.2", base.Add(2*time.Hour))

	if remaining := s.evict(base.Add(time.Hour)); remaining != 1 {
		t.Fatalf("remaining = %d, want 1", remaining)
	}
	if _, ok := s.entries["10.0.0.2"]; !ok {
		t.Error("recent client was evicted")
	}
}

func TestLimiterSet_SameClientSameBucket(t *testing.T) {
	s := newLimiterSet(1, 0)
	now := time.Now()
	if s.get("a", now) != s.get("a", now) {
		t.Error("same client got different limiters")
	}
	if s.burst != 1 {
		t.Errorf("burst = %d, want minimum of 1", s.burst)
	}
}

func TestLimiterSet_SweepStopsWithContext(t *testing.T) {
	s := newLimiterSet(1, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.sweep(ctx, time.Millisecond, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep did not return after cancel")
	}
}
