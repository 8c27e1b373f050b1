package resilience

import (
	"errors"
	"fmt"

	"github.com/sony/gobreaker"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// Breaker guards a dependency. Only errors accepted by countsAsFailure count
// toward tripping; any other error is recorded as a success.
type Breaker struct {
	cb      *gobreaker.CircuitBreaker
	enabled bool
}

func NewBreaker(name string, cfg CircuitBreakerConfig, countsAsFailure func(error) bool, onStateChange func(name, from, to string)) *Breaker {
	cfg = NormalizeCircuitBreakerConfig(cfg)
	if countsAsFailure == nil {
		countsAsFailure = func(err error) bool { return err != nil }
	}

	threshold := uint32(cfg.FailureThreshold)
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !countsAsFailure(err)
		},
	}
	if onStateChange != nil {
		settings.OnStateChange = func(name string, from gobreaker.State, to gobreaker.State) {
			onStateChange(name, from.String(), to.String())
		}
	}

	return &Breaker{
		cb:      gobreaker.NewCircuitBreaker(settings),
		enabled: cfg.Enabled,
	}
}

// Execute runs fn through the breaker. A rejected call returns ErrCircuitOpen.
func (b *Breaker) Execute(fn func() ([]byte, error)) ([]byte, error) {
	if b == nil || !b.enabled {
		return fn()
	}

	out, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s", ErrCircuitOpen, b.cb.Name())
	}
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok && out != nil {
		return nil, fmt.Errorf("unexpected breaker payload type %T", out)
	}
	return raw, nil
}

func (b *Breaker) State() string {
	if b == nil || !b.enabled {
		return "disabled"
	}
	return b.cb.State().String()
}
