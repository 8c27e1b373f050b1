package resilience

import (
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func TestBreaker_OpensAfterConsecutiveTransientFailures(t *testing.T) {
	t.Parallel()

	b := NewBreaker("nhl-test", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, func(err error) bool { return errors.Is(err, errTransient) }, nil)

	fail := func() ([]byte, error) { return nil, errTransient }
	for i := 0; i < 2; i++ {
		if _, err := b.Execute(fail); !errors.Is(err, errTransient) {
			t.Fatalf("attempt %d: expected transient error, got %v", i, err)
		}
	}

	calls := 0
	_, err := b.Execute(func() ([]byte, error) {
		calls++
		return []byte("ok"), nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("open breaker must not call through, calls=%d", calls)
	}
	if state := b.State(); state != "open" {
		t.Fatalf("unexpected state: %s", state)
	}
}

func TestBreaker_PermanentErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	permanent := errors.New("status 404")
	b := NewBreaker("nhl-test", CircuitBreakerConfig{Enabled: true, FailureThreshold: 1}, func(err error) bool {
		return errors.Is(err, errTransient)
	}, nil)

	for i := 0; i < 3; i++ {
		if _, err := b.Execute(func() ([]byte, error) { return nil, permanent }); !errors.Is(err, permanent) {
			t.Fatalf("expected permanent error passthrough, got %v", err)
		}
	}
	if state := b.State(); state != "closed" {
		t.Fatalf("expected closed breaker, got %s", state)
	}
}

func TestBreaker_DisabledPassesThrough(t *testing.T) {
	t.Parallel()

	b := NewBreaker("nhl-test", CircuitBreakerConfig{Enabled: false, FailureThreshold: 1}, nil, nil)
	for i := 0; i < 3; i++ {
		_, _ = b.Execute(func() ([]byte, error) { return nil, errTransient })
	}
	raw, err := b.Execute(func() ([]byte, error) { return []byte("ok"), nil })
	if err != nil || string(raw) != "ok" {
		t.Fatalf("unexpected disabled breaker result: raw=%q err=%v", raw, err)
	}
	if b.State() != "disabled" {
		t.Fatalf("unexpected state: %s", b.State())
	}
}
