package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/handiism/conception-songs/internal/clock"
)

func TestInterval(t *testing.T) {
	tests := []struct {
		rate float64
		want time.Duration
	}{
		{2, 500 * time.Millisecond},
		{1, time.Second},
		{4, 250 * time.Millisecond},
		{0, 0},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := Interval(tt.rate); got != tt.want {
			t.Errorf("Interval(%v) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestPacer_WaitsBetweenCalls(t *testing.T) {
	fake := clock.Fake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	p := NewPacer(fake, 2)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait #%d: %v", i+1, err)
		}
	}

	waits := fake.Waits()
	if len(waits) != 2 {
		t.Fatalf("recorded %d waits, want 2: %v", len(waits), waits)
	}
	for _, w := range waits {
		if w != 500*time.Millisecond {
			t.Errorf("wait = %v, want 500ms", w)
		}
	}
}

func TestPacer_SkipsWaitWhenIntervalAlreadyElapsed(t *testing.T) {
	fake := clock.Fake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	p := NewPacer(fake, 2)
	ctx := context.Background()

	_ = p.Wait(ctx)
	fake.Advance(300 * time.Millisecond)
	_ = p.Wait(ctx)
	fake.Advance(time.Second)
	_ = p.Wait(ctx)

	waits := fake.Waits()
	if len(waits) != 1 || waits[0] != 200*time.Millisecond {
		t.Errorf("Waits() = %v, want [200ms]", waits)
	}
}

func TestPacer_Disabled(t *testing.T) {
	fake := clock.Fake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	p := NewPacer(fake, 0)

	for i := 0; i < 5; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if len(fake.Waits()) != 0 {
		t.Errorf("disabled pacer waited: %v", fake.Waits())
	}
}

func TestPacer_CancelledContext(t *testing.T) {
	p := NewPacer(clock.Real(), 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait on cancelled ctx = %v, want context.Canceled", err)
	}
}
